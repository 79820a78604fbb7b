// Package handlers implements the gateway's HTTP endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gaianet-hq/gateway/pkg/api"
)

// writeJSON serializes v with the given status. Serialization failures
// are logged; headers are already sent at that point so the client
// sees a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes the error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
