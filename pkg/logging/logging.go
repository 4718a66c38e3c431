// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// SetDefaultStructuredLogger installs a JSON slog logger tagged with the
// service name and version. Level comes from LOG_LEVEL (debug, info, warn,
// error), defaulting to info.
func SetDefaultStructuredLogger(name, version string) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv("LOG_LEVEL")),
	})
	slog.SetDefault(slog.New(handler).With("service", name, "version", version))
}

// ParseLevel maps a level name onto slog's levels, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
