package server

import (
	"time"

	"golang.org/x/time/rate"
)

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// Rate limiting across the API endpoints; health and metrics are
	// exempt.
	RateLimit      rate.Limit
	RateLimitBurst int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
}
