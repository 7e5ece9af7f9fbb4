package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with additional context. An *Error keeps its code;
// anything else becomes INVALID_ARGUMENT with err as the cause.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var lensErr *Error
	if errors.As(err, &lensErr) {
		return &Error{
			Code:    lensErr.Code,
			Message: message,
			Details: lensErr.Details,
			cause:   err,
		}
	}
	return InvalidArgument(message).WithCause(err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsCode checks if the error has the specified error code.
func IsCode(err error, code ErrorCode) bool {
	var lensErr *Error
	if errors.As(err, &lensErr) {
		return lensErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
// Errors outside this package report ErrCodeInvalidArgument.
func GetCode(err error) ErrorCode {
	var lensErr *Error
	if errors.As(err, &lensErr) {
		return lensErr.Code
	}
	return ErrCodeInvalidArgument
}
