// Package upstream is the HTTP client for an OpenAI-compatible
// GaiaNet node. It covers the three calls the gateway makes:
// non-streaming chat completions, SSE streaming completions, and a
// one-token connectivity probe for the health endpoint.
package upstream
