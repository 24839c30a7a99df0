package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DirectFetchError is returned when the swagger asset short-circuit cannot
// serve a response. The handler falls back to generic forwarding.
type DirectFetchError struct {
	// URL is the upstream URL that was fetched
	URL string

	// StatusCode is the upstream status (0 if no response was received)
	StatusCode int

	// Cause is the transport error (if any)
	Cause error
}

// Error implements the error interface.
func (e *DirectFetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("direct fetch of %s failed: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("direct fetch of %s failed with status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying error for error chain support.
func (e *DirectFetchError) Unwrap() error {
	return e.Cause
}

// Reason classifies the failure for metrics: "transport" or "status".
func (e *DirectFetchError) Reason() string {
	if e.Cause != nil {
		return "transport"
	}
	return "status"
}

// ErrorResponse is the backend's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes an error in the backend's envelope so that clients see
// gateway failures in the same shape as backend failures.
//
//	{"error": "backend unavailable: dial tcp 127.0.0.1:8088: connect: connection refused"}
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
