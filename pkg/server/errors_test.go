package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/endfield/endfield/pkg/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fields", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))

	WriteError(rec, req, http.StatusBadRequest, ErrCodeInvalidRequest,
		"name is required", false, map[string]interface{}{"field": "name"})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Code != ErrCodeInvalidRequest || resp.Message != "name is required" {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.RequestID != "req-123" {
		t.Errorf("request id = %q, want the one from context", resp.RequestID)
	}
	if resp.Retryable {
		t.Error("bad request marked retryable")
	}
	if resp.Details["field"] != "name" {
		t.Errorf("details = %v", resp.Details)
	}
	if resp.Timestamp.IsZero() {
		t.Error("timestamp missing")
	}
}

func TestWriteErrorGeneratesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fields", nil)

	WriteError(rec, req, http.StatusInternalServerError, ErrCodeInternalError, "boom", false, nil)

	resp := decodeEnvelope(t, rec)
	if resp.RequestID == "" {
		t.Error("request id should be generated when the context has none")
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantRetry  bool
	}{
		{"invalid request", errors.New(errors.ErrCodeInvalidRequest, "bad name"), http.StatusBadRequest, ErrCodeInvalidRequest, false},
		{"not found", errors.New(errors.ErrCodeNotFound, "no such field"), http.StatusNotFound, ErrCodeNotFound, false},
		{"unavailable", errors.New(errors.ErrCodeUnavailable, "cluster down"), http.StatusServiceUnavailable, ErrCodeServiceUnavailable, true},
		{"timeout", errors.New(errors.ErrCodeTimeout, "helm timed out"), http.StatusServiceUnavailable, ErrCodeServiceUnavailable, true},
		{"internal", errors.New(errors.ErrCodeInternal, "broke"), http.StatusInternalServerError, ErrCodeInternalError, false},
		{"persistence falls through", errors.New(errors.ErrCodePersistence, "disk"), http.StatusInternalServerError, ErrCodeInternalError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/apply", nil)

			WriteDomainError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeEnvelope(t, rec)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
			if resp.Retryable != tt.wantRetry {
				t.Errorf("retryable = %v, want %v", resp.Retryable, tt.wantRetry)
			}
		})
	}
}
