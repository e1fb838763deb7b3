package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/lecture-companion/internal/config"
)

// ParseLevel converts a configured level name (case-insensitive) into a
// slog.Level. The second return value is false for unknown names, in which
// case the level is slog.LevelInfo.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger writing to out, sets it
// as the process default and returns it along with the LevelVar controlling
// it, so the level can be changed when configuration is reloaded.
//
// A nil out writes to stdout. Commands that speak a protocol on stdout must
// pass os.Stderr.
func Setup(cfg config.ServerConfig, out io.Writer) (*slog.Logger, *slog.LevelVar) {
	if out == nil {
		out = os.Stdout
	}

	level := new(slog.LevelVar)
	if !SetLevel(level, cfg.LogLevel) {
		// Create a temporary logger to output the warning
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	logger := New(out, level)
	slog.SetDefault(logger)

	return logger, level
}

// New creates a redacting JSON logger writing to out at the given level.
func New(out io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactHandler(handler))
}

// SetLevel updates level from a configured level name. Unknown names set
// slog.LevelInfo and return false.
func SetLevel(level *slog.LevelVar, name string) bool {
	parsed, ok := ParseLevel(name)
	level.Set(parsed)
	return ok
}
