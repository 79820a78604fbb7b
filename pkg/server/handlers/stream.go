package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gaianet-hq/gateway/pkg/chat"
)

// StreamHandler serves GET /api/chat/stream as a Server-Sent Events
// response. Failures after the stream starts are delivered as a
// terminal error event inside the 200 response, since the status line
// is already on the wire.
type StreamHandler struct {
	orchestrator *chat.Orchestrator
}

// NewStreamHandler creates a StreamHandler.
func NewStreamHandler(orchestrator *chat.Orchestrator) *StreamHandler {
	return &StreamHandler{orchestrator: orchestrator}
}

// ServeHTTP implements http.Handler.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	query := r.URL.Query()
	events := h.orchestrator.Stream(r.Context(), query.Get("message"), query.Get("model"))

	for ev := range events {
		var payload any
		switch {
		case ev.Err != nil:
			payload = map[string]string{"error": ev.Err.Message}
		case ev.Done:
			payload = map[string]bool{"done": true}
		default:
			payload = map[string]string{"content": ev.Content}
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}
