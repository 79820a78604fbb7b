package validate

import (
	"fmt"
	"math"
	"regexp"
	"unicode/utf8"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/security/sanitize"
)

// modelNamePattern is the full set of characters a model name may use.
var modelNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// allowedRoles are the conversation roles accepted from clients.
var allowedRoles = map[string]bool{
	"system":    true,
	"user":      true,
	"assistant": true,
}

// RequestError is a validation failure whose message is safe to return
// to the client verbatim.
type RequestError struct {
	Reason string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Reason
}

func reject(format string, args ...any) error {
	return &RequestError{Reason: fmt.Sprintf(format, args...)}
}

// Validator checks chat requests against the configured limits and
// sanitizes message content as part of validation.
type Validator struct {
	sanitizer        *sanitize.Sanitizer
	maxMessageLength int
	maxMessages      int
}

// New creates a Validator.
func New(sanitizer *sanitize.Sanitizer, maxMessageLength, maxMessages int) *Validator {
	return &Validator{
		sanitizer:        sanitizer,
		maxMessageLength: maxMessageLength,
		maxMessages:      maxMessages,
	}
}

// Validated is a request that passed validation. Message content is
// already sanitized.
type Validated struct {
	Model       string
	Messages    []api.ChatMessage
	MaxTokens   *int
	Temperature *float64
}

// Validate checks req and returns its validated form. Checks run in a
// fixed order and the first failure wins; the returned error is always
// a *RequestError with a client-safe message.
//
// Length limits apply to the raw content as received, before
// sanitization, counted in characters rather than bytes.
func (v *Validator) Validate(req *api.ChatRequest) (*Validated, error) {
	if !modelNamePattern.MatchString(req.Model) {
		return nil, reject("invalid model name format")
	}

	if req.Messages.Invalid || len(req.Messages.Items) > v.maxMessages {
		return nil, reject("invalid messages format or too many messages")
	}

	messages := make([]api.ChatMessage, 0, len(req.Messages.Items))
	for i := range req.Messages.Items {
		msg := req.Messages.Items[i]
		if !msg.IsRecord() {
			return nil, reject("message must be a record")
		}
		if !allowedRoles[msg.Role] {
			return nil, reject("invalid role: %s", msg.Role)
		}
		if utf8.RuneCountInString(msg.Content) > v.maxMessageLength {
			return nil, reject("message too long")
		}
		msg.Content = v.sanitizer.Sanitize(msg.Content)
		messages = append(messages, msg)
	}

	validated := &Validated{
		Model:    req.Model,
		Messages: messages,
	}

	if req.MaxTokens.Set {
		val := req.MaxTokens.Value
		if req.MaxTokens.Invalid || val != math.Trunc(val) || val < 1 || val > 4096 {
			return nil, reject("invalid max_tokens value")
		}
		tokens := int(val)
		validated.MaxTokens = &tokens
	}

	if req.Temperature.Set {
		val := req.Temperature.Value
		if req.Temperature.Invalid || val < 0 || val > 2 {
			return nil, reject("invalid temperature value")
		}
		validated.Temperature = &val
	}

	return validated, nil
}
