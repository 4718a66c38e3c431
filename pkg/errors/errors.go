// Package errors provides coded errors used across the endfield core.
//
// Domain logic (synthesis, merge, edge resolution) never returns errors for
// expected conditions; coded errors mark I/O and subprocess boundaries so a
// failure is always attributable to one file or one call.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an error for callers that branch on failure class.
type Code string

const (
	ErrCodeInternal       Code = "INTERNAL"
	ErrCodeInvalidRequest Code = "INVALID_REQUEST"
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeTimeout        Code = "TIMEOUT"
	ErrCodeUnavailable    Code = "UNAVAILABLE"
	ErrCodePersistence    Code = "PERSISTENCE"
	ErrCodeApply          Code = "APPLY"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error wrapping a cause. A nil cause yields a plain
// coded error so call sites do not need to branch.
func Wrap(code Code, message string, err error) error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err, unwrapping as needed.
// Returns ErrCodeInternal for uncoded errors and "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
