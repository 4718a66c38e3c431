package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/endfield/endfield/pkg/errors"
	"github.com/endfield/endfield/pkg/serializer"
)

// Error codes returned over the wire.
const (
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound           = "NOT_FOUND"
)

// ErrorResponse is the error envelope for every API failure.
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// WriteError writes the error envelope.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]interface{}) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteDomainError maps a coded domain error onto HTTP.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidRequest:
		WriteError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error(), false, nil)
	case errors.ErrCodeNotFound:
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), false, nil)
	case errors.ErrCodeUnavailable, errors.ErrCodeTimeout:
		WriteError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, err.Error(), true, nil)
	default:
		WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError, err.Error(), false, nil)
	}
}
