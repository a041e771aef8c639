// Package errors defines the coded error type used by the tracker's
// outer layers. The core resolution/diff functions are total and never
// error; these codes cover feed retrieval, the store, and bad requests
// arriving over the CLI, MCP, or web surfaces.
package errors

import "fmt"

// ErrorCode represents a tracker error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrFeedUnavailable ErrorCode = "FEED_UNAVAILABLE" // 502
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// TrackerError represents a structured error with code, status, and details.
type TrackerError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TrackerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TrackerError {
	return &TrackerError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an untracked or unknown bill.
func NewNotFound(identifier string) *TrackerError {
	return &TrackerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("bill not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFeedUnavailable creates a 502 error for a feed that could not be
// retrieved. Callers are expected to degrade to an empty feed rather
// than abort the run.
func NewFeedUnavailable(source string, err error) *TrackerError {
	msg := fmt.Sprintf("feed unavailable: %s", source)
	if err != nil {
		msg = fmt.Sprintf("feed unavailable: %s: %v", source, err)
	}
	return &TrackerError{
		Code:    ErrFeedUnavailable,
		Status:  502,
		Message: msg,
		Details: map[string]any{"source": source},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TrackerError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TrackerError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TrackerError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TrackerError); ok {
		return tErr.Code == code
	}
	return false
}
