package upstream

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned by NewClient when the node base URL or
// API key is missing.
var ErrNotConfigured = errors.New("gaianet upstream not configured")

// APIError is a non-2xx response from the GaiaNet node. The body is
// kept for logging and must never be forwarded to clients verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gaianet api error: status %d", e.StatusCode)
}

// TimeoutError indicates the request did not complete within the
// configured timeout.
type TimeoutError struct {
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("gaianet request timed out after %s", e.Timeout)
}

// ParseError indicates the node returned a body that could not be
// decoded.
type ParseError struct {
	RawResponse string
	Cause       error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse gaianet response: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// StreamError indicates a failure while reading a streaming response.
type StreamError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gaianet stream error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("gaianet stream error: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *StreamError) Unwrap() error {
	return e.Cause
}
