// Package config loads and validates anthrazit configuration via Viper.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Sink    SinkConfig    `mapstructure:"sink"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SinkConfig describes the log file and the sink's policies.
type SinkConfig struct {
	Directory   string `mapstructure:"directory"`
	Prefix      string `mapstructure:"prefix"`
	ExitOnFatal bool   `mapstructure:"exit_on_fatal"`
	Debug       bool   `mapstructure:"debug"`
}

// LoggingConfig toggles zap features for the sink's own diagnostics.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ANTHRAZIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sink.directory", os.TempDir())
	v.SetDefault("sink.prefix", "anthrazit")
	v.SetDefault("sink.exit_on_fatal", true)
	v.SetDefault("sink.debug", true)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
}

// Validate enforces required values.
func (c Config) Validate() error {
	if c.Sink.Directory == "" {
		return fmt.Errorf("sink.directory must be set")
	}
	if c.Sink.Prefix == "" {
		return fmt.Errorf("sink.prefix must be set")
	}
	if strings.ContainsAny(c.Sink.Prefix, `/\`) {
		return fmt.Errorf("sink.prefix must not contain path separators")
	}
	return nil
}

// LogSink converts the sink section into a logsink.Config.
func (c SinkConfig) LogSink() logsink.Config {
	return logsink.Config{
		Directory:   c.Directory,
		Prefix:      c.Prefix,
		ExitOnFatal: c.ExitOnFatal,
		Debug:       c.Debug,
	}
}
