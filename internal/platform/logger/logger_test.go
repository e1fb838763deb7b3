package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/phrazzld/lecture-companion/internal/config"
	"github.com/phrazzld/lecture-companion/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestSetupWritesJSONAtConfiguredLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	log, level := logger.Setup(config.ServerConfig{LogLevel: "warn"}, buf)

	assert.Equal(t, slog.LevelWarn, level.Level())
	assert.Same(t, log, slog.Default())

	log.Info("hidden")
	log.Warn("visible", "artifact", "quiz")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["msg"])
	assert.Equal(t, "quiz", entries[0]["artifact"])
}

func TestSetLevelAtRuntime(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	log, level := logger.Setup(config.ServerConfig{LogLevel: "error"}, buf)

	log.Info("before")
	assert.True(t, logger.SetLevel(level, "debug"))
	log.Debug("after")

	logger.AssertLogContains(t, buf, `"msg":"after"`)
	assert.NotContains(t, buf.String(), "before")

	assert.False(t, logger.SetLevel(level, "chatty"))
	assert.Equal(t, slog.LevelInfo, level.Level())
}

func TestRedactHandlerScrubsErrors(t *testing.T) {
	buf, log := logger.SetupTestLogger(t, nil)

	log.Error("Backend request failed",
		"error", errors.New("Incorrect API key provided: sk-proj-abcdefghijklmnop1234"))
	log.Warn("Config reload failed", "error", "key=AIzaSyA1234567890abcdefghijklmnopqrstu")
	log.With("error", errors.New("token=abcdefghij123")).Info("scoped")
	log.Info("grouped", slog.Group("request", slog.Any("cause", errors.New("bearer abcdefghijklmnop"))))

	out := buf.String()
	assert.NotContains(t, out, "sk-proj-abcdefghijklmnop1234")
	assert.NotContains(t, out, "AIzaSy")
	assert.NotContains(t, out, "abcdefghij123")
	assert.NotContains(t, out, "abcdefghijklmnop\"")
	logger.AssertLogField(t, buf, "error", "Incorrect API key provided: [REDACTED_KEY]")
}

func TestRedactHandlerKeepsOrdinaryAttributes(t *testing.T) {
	buf, log := logger.SetupTestLogger(t, nil)

	log.Info("Requesting artifact from backend",
		"request_id", "abc-123",
		"notes_length", 42)

	logger.AssertLogField(t, buf, "request_id", "abc-123")
	logger.AssertLogField(t, buf, "notes_length", float64(42))
}
