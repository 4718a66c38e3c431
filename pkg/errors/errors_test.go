package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"coded", New(ErrCodeNotFound, "gone"), ErrCodeNotFound},
		{"wrapped coded", fmt.Errorf("outer: %w", New(ErrCodeApply, "apply failed")), ErrCodeApply},
		{"plain error", stderrors.New("plain"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	plain := New(ErrCodeNotFound, "no layout file found")
	if got := plain.Error(); got != "NOT_FOUND: no layout file found" {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("permission denied")
	wrapped := Wrap(ErrCodePersistence, "writing config", cause)
	if got := wrapped.Error(); got != "PERSISTENCE: writing config: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped cause lost")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(ErrCodeInternal, "no cause", nil)
	if err == nil {
		t.Fatal("Wrap(nil) should still return an error")
	}
	if got := err.Error(); got != "INTERNAL: no cause" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := Newf(ErrCodeUnavailable, "cluster %s unreachable", "kind-dev")
	if !Is(err, ErrCodeUnavailable) {
		t.Error("Is() missed the code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() matched the wrong code")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) must be false")
	}
}
