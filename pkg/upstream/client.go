package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"gaianet-hq/gateway/pkg/config"
)

// Client talks to an OpenAI-compatible GaiaNet node. It retries
// transient failures (network errors and 5xx responses) with
// exponential backoff; 4xx responses are returned immediately.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from the GaiaNet configuration. It
// returns ErrNotConfigured when the base URL or API key is missing, so
// callers can run the gateway in degraded mode instead of failing
// startup.
func NewClient(cfg config.GaiaNetConfig, logger *slog.Logger) (*Client, error) {
	if !cfg.UpstreamConfigured() {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Model returns the node's default model name.
func (c *Client) Model() string {
	return c.model
}

// CreateCompletion sends a non-streaming completion request.
func (c *Client) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	req.Stream = false

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ParseError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	var completion CompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, &ParseError{RawResponse: string(body), Cause: err}
	}
	return &completion, nil
}

// Probe checks connectivity by requesting a one-token completion with
// the node's default model.
func (c *Client) Probe(ctx context.Context) error {
	one := 1
	_, err := c.CreateCompletion(ctx, &CompletionRequest{
		Model:     c.model,
		Messages:  []Message{{Role: "user", Content: "test"}},
		MaxTokens: &one,
	})
	return err
}

// doRequest posts req to /chat/completions and returns the raw
// response. The caller owns the body on success.
func (c *Client) doRequest(ctx context.Context, req *CompletionRequest) (*http.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			c.logger.Debug("Retrying gaianet request",
				"attempt", attempt,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				lastErr = &TimeoutError{Timeout: c.timeout}
			} else {
				lastErr = err
			}
			c.logger.Warn("GaiaNet request failed, will retry",
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}

		if resp.StatusCode >= 500 {
			lastErr = apiErr
			c.logger.Warn("GaiaNet returned server error, will retry",
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)
			continue
		}

		// Client errors are not retryable.
		return nil, apiErr
	}

	return nil, lastErr
}
