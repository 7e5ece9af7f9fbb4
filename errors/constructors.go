package errors

import "fmt"

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// KeyNotFound reports a strict key lookup on an absent key.
func KeyNotFound(key string) *Error {
	return New(ErrCodeKeyNotFound, fmt.Sprintf("key %q not found", key)).
		WithDetail("key", key)
}

// IndexOutOfRange reports a positional access outside [0, length).
func IndexOutOfRange(index, length int) *Error {
	return New(ErrCodeIndexOutOfRange, fmt.Sprintf("index %d out of range [0, %d)", index, length)).
		WithDetail("index", index).
		WithDetail("length", length)
}

// ArityMismatch reports a focus count other than the expected one.
func ArityMismatch(expected, actual int) *Error {
	return New(ErrCodeArityMismatch, fmt.Sprintf("expected %d focus, got %d", expected, actual)).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

// InvalidShape reports a primitive applied to data it cannot handle.
func InvalidShape(op string, data any) *Error {
	return New(ErrCodeInvalidShape, fmt.Sprintf("%s cannot be applied to %T", op, data)).
		WithDetail("op", op).
		WithDetail("type", fmt.Sprintf("%T", data))
}

// InvalidArgument reports a bad constructor or entry point argument.
func InvalidArgument(message string) *Error {
	return New(ErrCodeInvalidArgument, message)
}
