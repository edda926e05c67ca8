package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sink.Directory != os.TempDir() {
		t.Fatalf("expected default directory %q, got %q", os.TempDir(), cfg.Sink.Directory)
	}
	if cfg.Sink.Prefix != "anthrazit" {
		t.Fatalf("expected default prefix anthrazit, got %q", cfg.Sink.Prefix)
	}
	if !cfg.Sink.ExitOnFatal || !cfg.Sink.Debug {
		t.Fatalf("expected exit_on_fatal and debug enabled by default: %+v", cfg.Sink)
	}
	if !cfg.Logging.Development || cfg.Logging.Level != "info" {
		t.Fatalf("expected development logging at info: %+v", cfg.Logging)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
sink:
  directory: /var/log/app
  prefix: worker
  exit_on_fatal: false
  debug: false
logging:
  development: false
  level: warn
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := logsink.Config{Directory: "/var/log/app", Prefix: "worker"}
	if got := cfg.Sink.LogSink(); got != want {
		t.Fatalf("expected sink config %+v, got %+v", want, got)
	}
	if cfg.Logging.Development || cfg.Logging.Level != "warn" {
		t.Fatalf("expected logging overrides to apply: %+v", cfg.Logging)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANTHRAZIT_SINK_DIRECTORY", "/srv/logs")
	t.Setenv("ANTHRAZIT_SINK_EXIT_ON_FATAL", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sink.Directory != "/srv/logs" {
		t.Fatalf("expected env directory, got %q", cfg.Sink.Directory)
	}
	if cfg.Sink.ExitOnFatal {
		t.Fatal("expected env to disable exit_on_fatal")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{Sink: SinkConfig{Directory: "/tmp", Prefix: "anthrazit"}}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing directory",
			cfg: func() Config {
				c := base
				c.Sink.Directory = ""
				return c
			}(),
			want: "sink.directory",
		},
		{
			name: "missing prefix",
			cfg: func() Config {
				c := base
				c.Sink.Prefix = ""
				return c
			}(),
			want: "sink.prefix",
		},
		{
			name: "prefix with separator",
			cfg: func() Config {
				c := base
				c.Sink.Prefix = "../escape"
				return c
			}(),
			want: "path separators",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected base config to validate, got %v", err)
	}
}
