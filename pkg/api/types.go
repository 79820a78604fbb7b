package api

import "encoding/json"

// ChatMessage is a single conversation turn as received on the wire.
//
// Decoding is deliberately tolerant: a JSON element that is not an
// object (a string, number, or array in the messages list) does not
// fail the request decode. It is recorded as not-a-record so the
// validator can reject it with a precise error instead of a generic
// JSON error.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	notRecord bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		m.notRecord = true
		return nil
	}
	if raw, ok := obj["role"]; ok {
		_ = json.Unmarshal(raw, &m.Role)
	}
	if raw, ok := obj["content"]; ok {
		_ = json.Unmarshal(raw, &m.Content)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m ChatMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{m.Role, m.Content})
}

// IsRecord reports whether the message decoded from a JSON object.
func (m *ChatMessage) IsRecord() bool {
	return !m.notRecord
}

// MessageList is the messages field of a chat request. A value that is
// not a JSON array is recorded as invalid rather than failing the
// decode.
type MessageList struct {
	Items   []ChatMessage
	Invalid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *MessageList) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &l.Items); err != nil {
		l.Items = nil
		l.Invalid = true
	}
	return nil
}

// OptionalNumber is an optional JSON number field. A present but
// non-numeric value is recorded as invalid rather than failing the
// decode, so the validator can name the offending field.
type OptionalNumber struct {
	Value   float64
	Set     bool
	Invalid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *OptionalNumber) UnmarshalJSON(data []byte) error {
	n.Set = true
	if err := json.Unmarshal(data, &n.Value); err != nil {
		n.Invalid = true
	}
	return nil
}

// ChatRequest is the body of POST /api/chat. The single-message form
// ("message") and the conversation form ("messages") are both
// accepted; the handler folds the former into the latter.
type ChatRequest struct {
	Model       string         `json:"model"`
	Message     string         `json:"message"`
	Messages    MessageList    `json:"messages"`
	MaxTokens   OptionalNumber `json:"max_tokens"`
	Temperature OptionalNumber `json:"temperature"`
}

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Response  string `json:"response"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the body of every client-facing error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version"`
	GaiaNetStatus string `json:"gaianet_status"`
	GaiaNetError  string `json:"gaianet_error,omitempty"`
}
