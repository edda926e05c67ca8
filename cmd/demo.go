package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

const demoTag = "demo"

// newDemoCmd creates the 'demo' subcommand, which provokes an I/O error and
// records it as an exception.
func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Writes a sample session to a new log file",
		Long: `Opens a log file, provokes an error by opening "/" for writing and
records it with its stack trace. With --fatal a FATAL record is written as
well, which ends the process when exit_on_fatal is enabled.`,
		RunE: runDemoCommand,
	}
	cmd.Flags().Bool("fatal", false, "write a FATAL record before finishing")
	return cmd
}

func runDemoCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	fatal, err := cmd.Flags().GetBool("fatal")
	if err != nil {
		return err
	}
	sink := appInstance.GetSink()
	fmt.Fprintln(cmd.OutOrStdout(), sink.Path())

	if err := policy(logProvokedError(sink)); err != nil {
		return err
	}
	if fatal {
		if err := policy(sink.Fatal(demoTag, "fatal record requested")); err != nil {
			return err
		}
	}
	if err := policy(sink.Info(demoTag, "demo finished")); err != nil {
		return err
	}

	appInstance.GetLogger().Info("demo finished", zap.String("log_file", sink.Path()))
	return nil
}

// logProvokedError opens the root directory for writing, which always fails,
// and logs the failure as an exception record.
func logProvokedError(sink *logsink.Sink) error {
	f, err := os.OpenFile("/", os.O_WRONLY, 0)
	if err == nil {
		return f.Close()
	}
	return sink.LogException(demoTag, err)
}

// policy keeps only fatal sink errors. Everything else has already been
// reported on the console by the sink.
func policy(err error) error {
	if logsink.IsFatal(err) {
		return err
	}
	return nil
}
