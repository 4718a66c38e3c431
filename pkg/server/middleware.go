package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// withMiddleware wraps a handler with panic recovery, request IDs, rate
// limiting and access logging, innermost last.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", requestID)

		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("handler panicked", "request_id", requestID, "panic", rec)
				WriteError(w, r, http.StatusInternalServerError,
					ErrCodeInternalError, "internal server error", false, nil)
			}
		}()

		if !s.limiter.Allow() {
			WriteError(w, r, http.StatusTooManyRequests,
				ErrCodeRateLimitExceeded, "rate limit exceeded", true, nil)
			return
		}

		start := time.Now()
		next(w, r)
		slog.Debug("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
