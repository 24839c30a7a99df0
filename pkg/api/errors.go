package api

import (
	"fmt"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	// KindTransport means no response was received (connection refused, DNS,
	// context cancellation).
	KindTransport ErrorKind = "transport"

	// KindStatus means the backend answered with a non-2xx status.
	KindStatus ErrorKind = "status"

	// KindDecode means a 2xx response body did not match the expected envelope.
	KindDecode ErrorKind = "decode"
)

// Fallback message when an error payload carries no "error" field.
const defaultErrorMessage = "API request failed"

// Error is returned by every Client operation that fails.
type Error struct {
	// Kind classifies the failure
	Kind ErrorKind

	// Method and Path identify the call, e.g. "PUT" "/videos/abc/game"
	Method string
	Path   string

	// StatusCode is the HTTP status code (0 for transport errors)
	StatusCode int

	// Message is the user-facing message: the backend's "error" field, the
	// HTTP status phrase, or "API request failed"
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error returns Message so that callers can surface it directly.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Detail returns a diagnostic description including the request line.
func (e *Error) Detail() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: %s error (status %d): %s", e.Method, e.Path, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s error: %s", e.Method, e.Path, e.Kind, e.Message)
}
