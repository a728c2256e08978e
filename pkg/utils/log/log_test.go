package log

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeisme/greeter/pkg/configs"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, parseLogLevel(tc.in), "level %q", tc.in)
	}
}

func TestApplyLevelPriority(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	cfg := &configs.LogConfig{Level: "error"}

	assert.Equal(t, zerolog.ErrorLevel, ApplyLevel(cfg, &configs.AppConfig{}))
	assert.Equal(t, zerolog.InfoLevel, ApplyLevel(cfg, &configs.AppConfig{Verbose: true}))
	assert.Equal(t, zerolog.DebugLevel, ApplyLevel(cfg, &configs.AppConfig{Debug: true, Verbose: true}))
	assert.Equal(t, zerolog.PanicLevel, ApplyLevel(cfg, &configs.AppConfig{Quiet: true, Debug: true}))
	assert.Equal(t, zerolog.PanicLevel, zerolog.GlobalLevel())

	ApplyLevel(cfg, &configs.AppConfig{})
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestInitLoggerJSONConsole(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger := initLogger(context.Background(),
		&configs.LogConfig{Level: "info", JSON: true, Mode: "console"},
		&configs.AppConfig{Name: "greeter"},
		&buf)

	logger.Info().Int("port", 8080).Msg("Server running on port 8080")
	logger.Debug().Msg("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Server running on port 8080", entry["message"])
	assert.EqualValues(t, 8080, entry["port"])
	assert.Same(t, logger, GetLogger())
}

func TestInitLoggerQuiet(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger := initLogger(context.Background(),
		&configs.LogConfig{Level: "debug", JSON: true},
		&configs.AppConfig{Quiet: true},
		&buf)
	logger.Error().Msg("dropped")
	assert.Zero(t, buf.Len())
}

func TestInitLoggerFileMode(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	path := filepath.Join(t.TempDir(), "logs", "greeter.log")
	var buf bytes.Buffer
	logger := initLogger(context.Background(),
		&configs.LogConfig{Level: "info", JSON: true, Mode: "file", FilePath: path, MaxSize: 1},
		&configs.AppConfig{},
		&buf)
	logger.Info().Msg("to file")

	assert.Zero(t, buf.Len(), "file mode must not write to the console")
	assert.FileExists(t, path)
}

func TestGetLoggerFallbackKeepsLevel(t *testing.T) {
	globalMu.Lock()
	prev := globalLogger
	globalLogger = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		globalMu.Lock()
		globalLogger = prev
		globalMu.Unlock()
	})

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.Same(t, logger, GetLogger())
}
