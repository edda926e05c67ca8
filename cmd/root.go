// Package cmd defines and implements the CLI commands for the anthrazit executable.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/anthrazit/internal/app"
	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands will use.
// This allows us to inject a mock app during tests.
type App interface {
	Close() error
	GetLogger() *zap.Logger
	GetSink() *logsink.Sink
}

// newApp is the application factory. It's a variable so we can
// replace it with a mock factory in our tests.
var newApp = func(cfgPath string) (App, error) {
	return app.NewApp(cfgPath)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "anthrazit",
		Short: "A minimal leveled file logger.",
		Long: `anthrazit writes leveled text records to a fresh, timestamped log file
and can terminate the process when a fatal record is written.`,
		SilenceErrors: true,
		SilenceUsage:  true,

		// Builds the application once flags are parsed and hands it to the
		// subcommand through the context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults and ANTHRAZIT_* environment when empty)")
	cmd.AddCommand(newDemoCmd())

	return cmd
}

// Execute is the main entry point. It terminates the process with status 1
// when a command fails, including when the log sink's fatal-exit policy fires.
func Execute() {
	if code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// run executes the command line and returns the process exit status. The
// application is always closed before returning.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	executed, err := root.ExecuteContextC(ctx)
	if executed != nil && executed.Context() != nil {
		if appInstance, ok := executed.Context().Value(appKey).(App); ok && appInstance != nil {
			if cerr := appInstance.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}

	switch {
	case err == nil:
		return 0
	case logsink.IsFatal(err):
		fmt.Fprintf(stderr, "anthrazit: exiting after fatal error: %v\n", err)
		return logsink.ExitCode(err)
	default:
		fmt.Fprintf(stderr, "anthrazit: %v\n", err)
		return 1
	}
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return appInstance, nil
}
