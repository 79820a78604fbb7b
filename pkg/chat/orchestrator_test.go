package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/config"
	"gaianet-hq/gateway/pkg/security"
	"gaianet-hq/gateway/pkg/upstream"
)

func newSuite(t *testing.T) *security.Suite {
	t.Helper()
	suite, err := security.New(config.SecurityConfig{
		RateLimitPerHour:     100,
		RateLimitWindow:      time.Hour,
		MaxMessageLength:     10000,
		MaxMessages:          100,
		PrivacyFilterEnabled: true,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return suite
}

func newTestOrchestrator(t *testing.T, upstreamURL string) *Orchestrator {
	t.Helper()

	var client *upstream.Client
	if upstreamURL != "" {
		var err error
		client, err = upstream.NewClient(config.GaiaNetConfig{
			BaseURL:    upstreamURL,
			APIKey:     "test-key",
			Model:      "default-model",
			Timeout:    5 * time.Second,
			MaxRetries: 0,
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
	}

	return New(client, newSuite(t), nil, nil)
}

func completionHandler(t *testing.T, model, content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":    "cmpl-1",
			"model": model,
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatal(err)
		}
	}
}

func chatRequest(t *testing.T, body string) *api.ChatRequest {
	t.Helper()
	var req api.ChatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatal(err)
	}
	return &req
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req upstream.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "llama" {
			t.Errorf("Upstream model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "Hello" {
			t.Errorf("Upstream messages = %+v", req.Messages)
		}
		completionHandler(t, "llama-3", "Hi there!")(w, r)
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	resp, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello", "model": "llama"}`))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Response != "Hi there!" {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.Model != "llama-3" {
		t.Errorf("Model = %q, want upstream's model echoed", resp.Model)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", resp.Timestamp, err)
	}
}

func TestCompleteDefaultsModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req upstream.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "default-model" {
			t.Errorf("Model = %q, want client default", req.Model)
		}
		// No model field in the response; the requested model is echoed.
		completionHandler(t, "", "ok")(w, r)
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	resp, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello"}`))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Model != "default-model" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestCompleteNotConfigured(t *testing.T) {
	o := newTestOrchestrator(t, "")

	_, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello"}`))
	chatErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if chatErr.Message != "GaiaNet not configured" || chatErr.Status != 500 {
		t.Errorf("Error = %+v", chatErr)
	}
}

func TestCompleteValidationFailure(t *testing.T) {
	// Upstream must not be called for an invalid request.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Upstream called for invalid request")
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	_, err := o.Complete(context.Background(), chatRequest(t,
		`{"model": "llama", "messages": [{"role": "hacker", "content": "hi"}]}`))
	chatErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if chatErr.Message != "invalid role: hacker" || chatErr.Status != 400 {
		t.Errorf("Error = %+v", chatErr)
	}
}

func TestCompletePrivacyViolationAbortsBeforeUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Upstream called despite privacy violation")
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	_, err := o.Complete(context.Background(), chatRequest(t,
		`{"message": "my card is 4111-1111-1111-1111", "model": "llama"}`))
	chatErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if chatErr.Message != "Privacy violation detected" || chatErr.Status != 400 {
		t.Errorf("Error = %+v", chatErr)
	}
}

func TestCompleteRedactsResponse(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "llama", "write to admin@example.com for help"))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	resp, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello"}`))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Response != "write to [REDACTED_EMAIL] for help" {
		t.Errorf("Response = %q", resp.Response)
	}
}

func TestCompleteNullContentBecomesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"model": "llama", "choices": [{"index": 0, "message": {"role": "assistant", "content": null}}]}`)
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)

	resp, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello"}`))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Response != "" {
		t.Errorf("Response = %q, want empty", resp.Response)
	}
}

func TestCompleteUpstreamErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		upstreamCode int
		wantMessage  string
		wantStatus   int
	}{
		{"bad request", http.StatusBadRequest, "invalid request format", 400},
		{"model missing", http.StatusNotFound, "model not available", 400},
		{"server error", http.StatusInternalServerError, "service temporarily unavailable", 500},
		{"unexpected status", http.StatusTeapot, "request failed", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream detail that must not leak", tt.upstreamCode)
			}))
			defer server.Close()

			o := newTestOrchestrator(t, server.URL)

			_, err := o.Complete(context.Background(), chatRequest(t, `{"message": "Hello"}`))
			chatErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if chatErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", chatErr.Message, tt.wantMessage)
			}
			if chatErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", chatErr.Status, tt.wantStatus)
			}
		})
	}
}

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	return got
}

func TestStreamSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req upstream.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if !req.Stream {
			t.Error("Expected streaming request")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"Hello"}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":" world"}}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)
	got := collectEvents(t, o.Stream(context.Background(), "hi", "llama"))

	if len(got) != 3 {
		t.Fatalf("Events = %+v, want 2 chunks and done", got)
	}
	if got[0].Content != "Hello" || got[1].Content != " world" {
		t.Errorf("Chunks = %+v", got[:2])
	}
	if !got[2].Done {
		t.Errorf("Last event = %+v, want done", got[2])
	}
}

func TestStreamRedactsEachChunk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// The email in the first chunk is redacted; the one split
		// across the last two chunks survives, by design of per-chunk
		// redaction.
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"mail a@b.co now"}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":"or c@d"}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":".co later"}}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)
	got := collectEvents(t, o.Stream(context.Background(), "hi", "llama"))

	if len(got) != 4 {
		t.Fatalf("Events = %+v", got)
	}
	if got[0].Content != "mail [REDACTED_EMAIL] now" {
		t.Errorf("First chunk = %q", got[0].Content)
	}
	if got[1].Content != "or c@d" || got[2].Content != ".co later" {
		t.Errorf("Split-pattern chunks changed: %q, %q", got[1].Content, got[2].Content)
	}
}

func TestStreamMissingMessage(t *testing.T) {
	o := newTestOrchestrator(t, "")
	got := collectEvents(t, o.Stream(context.Background(), "", "llama"))

	if len(got) != 1 || got[0].Err == nil {
		t.Fatalf("Events = %+v, want single error", got)
	}
	if got[0].Err.Message != "Message parameter required" {
		t.Errorf("Error = %q", got[0].Err.Message)
	}
}

func TestStreamNotConfigured(t *testing.T) {
	o := newTestOrchestrator(t, "")
	got := collectEvents(t, o.Stream(context.Background(), "hi", ""))

	if len(got) != 1 || got[0].Err == nil {
		t.Fatalf("Events = %+v, want single error", got)
	}
	if got[0].Err.Message != "GaiaNet not configured" {
		t.Errorf("Error = %q", got[0].Err.Message)
	}
}

func TestStreamPrivacyViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Upstream called despite privacy violation")
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)
	got := collectEvents(t, o.Stream(context.Background(), "ssn 123-45-6789", ""))

	if len(got) != 1 || got[0].Err == nil {
		t.Fatalf("Events = %+v, want single error", got)
	}
	if got[0].Err.Message != "Privacy violation detected" {
		t.Errorf("Error = %q", got[0].Err.Message)
	}
}

func TestStreamUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusNotFound)
	}))
	defer server.Close()

	o := newTestOrchestrator(t, server.URL)
	got := collectEvents(t, o.Stream(context.Background(), "hi", "missing-model"))

	if len(got) != 1 || got[0].Err == nil {
		t.Fatalf("Events = %+v, want single error", got)
	}
	if got[0].Err.Message != "model not available" {
		t.Errorf("Error = %q", got[0].Err.Message)
	}
}

func TestHealthProbe(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		o := newTestOrchestrator(t, "")
		status, detail := o.HealthProbe(context.Background())
		if status != UpstreamNotConfigured || detail != "" {
			t.Errorf("HealthProbe() = %q, %q", status, detail)
		}
	})

	t.Run("connected", func(t *testing.T) {
		server := httptest.NewServer(completionHandler(t, "llama", "ok"))
		defer server.Close()

		o := newTestOrchestrator(t, server.URL)
		status, detail := o.HealthProbe(context.Background())
		if status != UpstreamConnected || detail != "" {
			t.Errorf("HealthProbe() = %q, %q", status, detail)
		}
	})

	t.Run("error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadRequest)
		}))
		defer server.Close()

		o := newTestOrchestrator(t, server.URL)
		status, detail := o.HealthProbe(context.Background())
		if status != UpstreamError {
			t.Errorf("Status = %q", status)
		}
		if detail == "" {
			t.Error("Expected a failure description")
		}
	})
}
