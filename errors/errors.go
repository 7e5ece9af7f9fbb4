// Package errors provides the typed errors raised while evaluating lenses.
package errors

import "fmt"

// ErrorCode represents a lens failure category.
type ErrorCode string

// Error codes for all lens failure categories.
const (
	ErrCodeKeyNotFound     ErrorCode = "KEY_NOT_FOUND"
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
	ErrCodeArityMismatch   ErrorCode = "ARITY_MISMATCH"
	ErrCodeInvalidShape    ErrorCode = "INVALID_SHAPE"
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrKeyNotFound     = &Error{Code: ErrCodeKeyNotFound, Message: "key not found"}
	ErrIndexOutOfRange = &Error{Code: ErrCodeIndexOutOfRange, Message: "index out of range"}
	ErrArityMismatch   = &Error{Code: ErrCodeArityMismatch, Message: "arity mismatch"}
	ErrInvalidShape    = &Error{Code: ErrCodeInvalidShape, Message: "invalid shape"}
	ErrInvalidArgument = &Error{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
)

// Error is the error type returned by lens evaluation.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}
