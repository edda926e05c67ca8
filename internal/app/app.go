// Package app initializes and holds long-lived application services, acting as a dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/anthrazit/internal/config"
	"github.com/JakeFAU/anthrazit/internal/logging"
	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

// App holds the shared services for one command run: the loaded
// configuration, the zap logger for diagnostics and the log sink.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	sink   *logsink.Sink
}

// GetConfig returns the loaded configuration.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetLogger returns the zap logger used for diagnostics.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetSink returns the log sink opened for this run.
func (a *App) GetSink() *logsink.Sink {
	return a.sink
}

// NewApp loads configuration from cfgPath (or defaults and environment when
// empty), builds the logger and opens the log sink. The sink is also
// installed as the process-wide default.
func NewApp(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	sink, err := logsink.Open(cfg.Sink.LogSink(), logsink.WithLogger(logger.Named("logsink")))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open log sink: %w", err)
	}
	logsink.SetDefault(sink)

	logger.Info("log sink ready",
		zap.String("path", sink.Path()),
		zap.String("session", sink.Session()),
		zap.Bool("exit_on_fatal", cfg.Sink.ExitOnFatal),
		zap.Bool("debug", cfg.Sink.Debug),
	)
	return &App{cfg: cfg, logger: logger, sink: sink}, nil
}

// Close releases the sink and flushes the logger. It is safe to call more
// than once.
func (a *App) Close() error {
	if logsink.Default() == a.sink {
		logsink.SetDefault(nil)
	}
	err := a.sink.Close()
	_ = a.logger.Sync() //nolint:errcheck // stderr sync fails on some terminals
	return err
}
