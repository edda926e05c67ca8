// Package app_test contains unit tests for the app package.
package app_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/anthrazit/internal/app"
	"github.com/JakeFAU/anthrazit/pkg/logsink"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewApp_Success(t *testing.T) {
	logDir := t.TempDir()
	cfgPath := writeConfig(t, t.TempDir(), `
sink:
  directory: `+logDir+`
  prefix: apptest
  exit_on_fatal: false
  debug: true
logging:
  development: false
  level: error
`)

	a, err := app.NewApp(cfgPath)
	require.NoError(t, err)

	sink := a.GetSink()
	require.NotNil(t, sink)
	assert.Same(t, sink, logsink.Default())
	assert.NotNil(t, a.GetLogger())
	assert.Equal(t, "apptest", a.GetConfig().Sink.Prefix)
	assert.True(t, strings.HasPrefix(filepath.Base(sink.Path()), "apptest-"))
	assert.Equal(t, logDir, filepath.Dir(sink.Path()))

	require.NoError(t, a.Close())
	assert.True(t, sink.Closed())
	assert.Nil(t, logsink.Default())
	require.NoError(t, a.Close())

	data, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "{INFO} anthrazit: Successfully started at ")
	assert.Contains(t, lines[1], "{DEBUG} anthrazit: fileName: apptest-")
}

func TestNewApp_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "invalid prefix",
			body: "sink:\n  prefix: a/b\n",
			want: "sink.prefix",
		},
		{
			name: "invalid log level",
			body: "logging:\n  level: chatty\n",
			want: "init logger",
		},
		{
			name: "missing directory",
			body: "sink:\n  directory: /definitely/not/here\n  exit_on_fatal: false\n",
			want: "open log sink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := writeConfig(t, t.TempDir(), tt.body)
			_, err := app.NewApp(cfgPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewApp_FatalOpenIsMarked(t *testing.T) {
	cfgPath := writeConfig(t, t.TempDir(), "sink:\n  directory: /definitely/not/here\n  exit_on_fatal: true\n")

	_, err := app.NewApp(cfgPath)
	require.Error(t, err)
	assert.True(t, logsink.IsFatal(err))
	assert.Equal(t, 1, logsink.ExitCode(err))
}
