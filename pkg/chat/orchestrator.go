// Package chat orchestrates a chat request end to end: validation,
// privacy screening, the upstream completion call, and redaction of
// the returned content.
package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/config"
	"gaianet-hq/gateway/pkg/security"
	"gaianet-hq/gateway/pkg/security/validate"
	"gaianet-hq/gateway/pkg/telemetry/metrics"
	"gaianet-hq/gateway/pkg/upstream"
)

// Upstream health states reported by HealthProbe.
const (
	UpstreamConnected     = "connected"
	UpstreamError         = "error"
	UpstreamNotConfigured = "not_configured"
)

// Orchestrator runs chat requests through the security suite and the
// upstream client. A nil client means the gateway runs in degraded
// mode: health still answers, chat requests fail with a configuration
// error.
type Orchestrator struct {
	client   *upstream.Client
	security *security.Suite
	metrics  *metrics.Collector
	logger   *slog.Logger
}

// New creates an Orchestrator. client may be nil.
func New(client *upstream.Client, suite *security.Suite, collector *metrics.Collector, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector(config.MetricsConfig{})
	}
	return &Orchestrator{
		client:   client,
		security: suite,
		metrics:  collector,
		logger:   logger,
	}
}

// DefaultModel returns the model used when a request names none.
func (o *Orchestrator) DefaultModel() string {
	if o.client == nil {
		return "default"
	}
	return o.client.Model()
}

// Complete runs a synchronous chat completion. The single-message form
// (req.Message) is folded into a one-turn user conversation before
// validation. All failures are returned as *Error.
func (o *Orchestrator) Complete(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if o.client == nil {
		return nil, ErrNotConfigured
	}

	if req.Message != "" {
		req.Messages = api.MessageList{Items: []api.ChatMessage{{Role: "user", Content: req.Message}}}
	}
	if req.Model == "" {
		req.Model = o.client.Model()
	}

	validated, err := o.security.Validator.Validate(req)
	if err != nil {
		var reqErr *validate.RequestError
		if errors.As(err, &reqErr) {
			return nil, &Error{Message: reqErr.Reason, Status: 400}
		}
		return nil, &Error{Message: "Internal server error", Status: 500}
	}

	if err := o.checkPrivacy(validated.Messages); err != nil {
		return nil, err
	}

	resp, err := o.client.CreateCompletion(ctx, &upstream.CompletionRequest{
		Model:       validated.Model,
		Messages:    toUpstreamMessages(validated.Messages),
		MaxTokens:   validated.MaxTokens,
		Temperature: validated.Temperature,
	})
	if err != nil {
		o.metrics.RecordUpstream("error")
		return nil, mapUpstreamError(o.logger, err)
	}
	o.metrics.RecordUpstream("success")

	content := o.redact(resp.Content())

	model := resp.Model
	if model == "" {
		model = validated.Model
	}

	return &api.ChatResponse{
		Response:  content,
		Model:     model,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Event is one element of a streamed completion: a content chunk, the
// terminal done marker, or a terminal error.
type Event struct {
	Content string
	Done    bool
	Err     *Error
}

// Stream runs a streaming completion over a single user message and
// returns an ordered event channel. The channel is closed after the
// done or error event. Redaction is applied to each chunk
// independently, so a sensitive pattern split across two chunks passes
// through unredacted.
func (o *Orchestrator) Stream(ctx context.Context, message, model string) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		fail := func(e *Error) {
			select {
			case events <- Event{Err: e}:
			case <-ctx.Done():
			}
		}

		if message == "" {
			fail(&Error{Message: "Message parameter required", Status: 400})
			return
		}
		if o.client == nil {
			fail(ErrNotConfigured)
			return
		}
		if model == "" {
			model = o.client.Model()
		}

		req := &api.ChatRequest{Model: model}
		req.Messages = api.MessageList{Items: []api.ChatMessage{{Role: "user", Content: message}}}

		validated, err := o.security.Validator.Validate(req)
		if err != nil {
			var reqErr *validate.RequestError
			if errors.As(err, &reqErr) {
				fail(&Error{Message: reqErr.Reason, Status: 400})
			} else {
				fail(&Error{Message: "Internal server error", Status: 500})
			}
			return
		}

		if err := o.checkPrivacy(validated.Messages); err != nil {
			fail(err.(*Error))
			return
		}

		stream, err := o.client.StreamCompletion(ctx, &upstream.CompletionRequest{
			Model:    validated.Model,
			Messages: toUpstreamMessages(validated.Messages),
		})
		if err != nil {
			o.metrics.RecordUpstream("error")
			fail(mapUpstreamError(o.logger, err))
			return
		}
		defer stream.Close()
		o.metrics.RecordUpstream("success")

		for {
			content, err := stream.Recv(ctx)
			if err == io.EOF {
				select {
				case events <- Event{Done: true}:
				case <-ctx.Done():
				}
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				fail(mapUpstreamError(o.logger, err))
				return
			}

			o.metrics.RecordStreamChunk()
			select {
			case events <- Event{Content: o.redact(content)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events
}

// HealthProbe reports the upstream connectivity state and, for the
// error state, a description of the failure.
func (o *Orchestrator) HealthProbe(ctx context.Context) (status, detail string) {
	if o.client == nil {
		return UpstreamNotConfigured, ""
	}
	if err := o.client.Probe(ctx); err != nil {
		return UpstreamError, err.Error()
	}
	return UpstreamConnected, ""
}

// checkPrivacy rejects the request if any message contains PII.
// Disabled filtering reports no violations.
func (o *Orchestrator) checkPrivacy(messages []api.ChatMessage) error {
	contents := make([]string, len(messages))
	for i, msg := range messages {
		contents[i] = msg.Content
	}

	violations := o.security.Privacy.Check(contents)
	if len(violations) == 0 {
		return nil
	}

	o.metrics.RecordPrivacyViolation()
	for _, v := range violations {
		o.logger.Warn("Privacy violation in request",
			"message_index", v.Index,
			"kinds", v.Kinds,
		)
	}
	return errPrivacyViolation
}

// redact applies response-side redaction and records one metric
// increment per match found.
func (o *Orchestrator) redact(content string) string {
	if !o.security.Privacy.Enabled() {
		return content
	}
	for _, finding := range o.security.Privacy.Detect(content) {
		o.metrics.RecordRedaction(finding.Kind)
	}
	return o.security.Privacy.Redact(content)
}

// toUpstreamMessages converts validated wire messages to the upstream
// request format.
func toUpstreamMessages(messages []api.ChatMessage) []upstream.Message {
	out := make([]upstream.Message, len(messages))
	for i, msg := range messages {
		out[i] = upstream.Message{Role: msg.Role, Content: msg.Content}
	}
	return out
}
