package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/chat"
)

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(orchestrator *chat.Orchestrator) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.orchestrator.Complete(r.Context(), &req)
	if err != nil {
		var chatErr *chat.Error
		if errors.As(err, &chatErr) {
			writeError(w, chatErr.Status, chatErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
