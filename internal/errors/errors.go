package errors

import (
	"errors"
	"fmt"
)

// CustomError represents an application error with metadata. Message is
// safe to return to callers; Cause carries the internal diagnostic and
// is only ever logged.
type CustomError struct {
	Code       string // Machine-readable error code
	Message    string // Human-readable, client-safe message
	StatusCode int    // HTTP status code
	Cause      error  // Underlying error
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface for wrapping errors
func (e *CustomError) Unwrap() error {
	return e.Cause
}

// Is checks if an error is of a specific type
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCustomError creates a new custom error
func NewCustomError(code string, message string, statusCode int) *CustomError {
	return &CustomError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithCause returns a copy of the error carrying an underlying cause,
// leaving the predefined sentinel untouched.
func (e *CustomError) WithCause(err error) *CustomError {
	clone := *e
	clone.Cause = err
	return &clone
}

// WithMessage returns a copy of the error with a different client-facing
// message. Used where the collaborator already produces a human-readable
// explanation (resolver failures).
func (e *CustomError) WithMessage(message string) *CustomError {
	clone := *e
	clone.Message = message
	return &clone
}

// Pre-defined errors
var (
	// Validation errors (400)
	ErrInvalidURL = NewCustomError(
		"INVALID_URL",
		"url query parameter is required",
		400,
	)

	// Resolution failures are reported with HTTP 200 and success=false,
	// matching the public contract of the original API. The status code
	// here is what the error would carry in isolation.
	ErrResolutionFailed = NewCustomError(
		"RESOLUTION_FAILED",
		"Could not resolve media formats for the given URL",
		200,
	)

	ErrShortCodeNotFound = NewCustomError(
		"SHORT_CODE_NOT_FOUND",
		"Invalid or expired short code",
		404,
	)

	ErrFetchFailed = NewCustomError(
		"FETCH_FAILED",
		"Failed to fetch media from origin",
		500,
	)

	ErrInternal = NewCustomError(
		"INTERNAL_ERROR",
		"An internal server error occurred",
		500,
	)

	ErrConfigInvalid = NewCustomError(
		"CONFIG_ERROR",
		"Configuration is invalid",
		500,
	)
)

// IsCustomError checks if an error is a CustomError
func IsCustomError(err error) bool {
	var customErr *CustomError
	return errors.As(err, &customErr)
}

// GetStatusCode extracts HTTP status code from an error
func GetStatusCode(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return 500 // Default to internal server error
}

// GetErrorCode extracts error code from an error
func GetErrorCode(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return "UNKNOWN_ERROR"
}

// GetErrorMessage extracts the client-safe message from an error
func GetErrorMessage(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return "An unknown error occurred"
}
