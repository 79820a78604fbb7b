package handlers

import (
	"net/http"
	"time"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/chat"
)

// HealthHandler serves GET /api/health. It always answers 200: the
// upstream state is reported in the body, not the status code, so
// orchestrators probing the gateway itself do not restart it when the
// GaiaNet node is down.
type HealthHandler struct {
	orchestrator *chat.Orchestrator
	version      string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(orchestrator *chat.Orchestrator, version string) *HealthHandler {
	return &HealthHandler{orchestrator: orchestrator, version: version}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	status, detail := h.orchestrator.HealthProbe(r.Context())

	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       h.version,
		GaiaNetStatus: status,
		GaiaNetError:  detail,
	})
}
