package errors

import (
	"errors"
	"fmt"
)

// Standard error types
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrHTTPRequest   = errors.New("HTTP request error")
	ErrHTTPResponse  = errors.New("HTTP response error")
	ErrAPIResponse   = errors.New("API error response")
	ErrExtraction    = errors.New("data extraction error")
	ErrDecode        = errors.New("decode error")
	ErrSink          = errors.New("sink error")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
