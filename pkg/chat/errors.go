package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"gaianet-hq/gateway/pkg/upstream"
)

// Error is a client-facing failure carrying the HTTP status the
// handler should return. Its message is always safe to serialize into
// the error envelope; upstream detail never reaches it.
type Error struct {
	Message string
	Status  int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// ErrNotConfigured is returned when no upstream client was
// initialized at startup.
var ErrNotConfigured = &Error{Message: "GaiaNet not configured", Status: http.StatusInternalServerError}

// errPrivacyViolation rejects requests whose messages contain PII.
var errPrivacyViolation = &Error{Message: "Privacy violation detected", Status: http.StatusBadRequest}

// mapUpstreamError translates an upstream failure into its
// client-facing form. The original error is logged here, once, and
// then dropped.
func mapUpstreamError(logger *slog.Logger, err error) *Error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusBadRequest:
			logger.Error("Bad request to GaiaNet", "status", apiErr.StatusCode, "body", apiErr.Body)
			return &Error{Message: "invalid request format", Status: http.StatusBadRequest}
		case apiErr.StatusCode == http.StatusNotFound:
			logger.Error("Model not found", "status", apiErr.StatusCode, "body", apiErr.Body)
			return &Error{Message: "model not available", Status: http.StatusBadRequest}
		case apiErr.StatusCode >= 500:
			logger.Error("GaiaNet server error", "status", apiErr.StatusCode, "body", apiErr.Body)
			return &Error{Message: "service temporarily unavailable", Status: http.StatusInternalServerError}
		}
	}

	logger.Error("Unexpected GaiaNet error", "error", err)
	return &Error{Message: "request failed", Status: http.StatusInternalServerError}
}
