package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// DefaultConfig returns sensible defaults. The listener binds loopback
// only: this is a local command surface, not a public service.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "127.0.0.1",
		Port:            7466,
		RateLimit:       100,
		RateLimitBurst:  200,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        slog.LevelInfo.String(),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		cfg.LogLevel = logLevelStr
	}

	return cfg
}
