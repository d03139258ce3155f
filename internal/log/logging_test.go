package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/parkwatch/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" Warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewLogger_WritesJSONAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("availability fetch failed", "failures", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "availability fetch failed", entry["msg"])
	assert.Equal(t, float64(2), entry["failures"])
}

func TestSetupLogger_CreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "parkwatch.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetupLogger_EmptyFileDiscards(t *testing.T) {
	logger, err := SetupLogger(&config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError), "no file means no terminal output")
}

func TestNullLogger_Disabled(t *testing.T) {
	assert.False(t, NullLogger().Enabled(context.Background(), slog.LevelError))
}
