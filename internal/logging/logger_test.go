package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_WritesConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "server.log")

	logger, closer, err := New(Options{Level: "debug", Console: &buf, File: path})
	require.NoError(t, err)

	logger.Info("user registered", "username", "alice")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "msg=\"user registered\"")
	assert.Contains(t, buf.String(), "username=alice")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"user registered"`)
}

func TestNew_LevelFiltersRecords(t *testing.T) {
	var buf bytes.Buffer

	logger, _, err := New(Options{Level: "warn", Console: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_BadFilePath(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.Error(t, err)
}
