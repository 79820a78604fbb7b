package upstream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// Stream reads content deltas from an SSE completion stream. It is
// not safe for concurrent use; a single goroutine should drive Recv.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	closed  bool
}

// StreamCompletion sends a streaming completion request and returns a
// Stream over its content deltas. The caller must Close the stream.
func (c *Client) StreamCompletion(ctx context.Context, req *CompletionRequest) (*Stream, error) {
	req.Stream = true

	resp, err := c.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Stream{
		body:    resp.Body,
		scanner: bufio.NewScanner(resp.Body),
	}, nil
}

// Recv returns the next non-empty content delta. It returns io.EOF
// when the stream terminates, either with a "[DONE]" marker or by the
// node closing the connection.
func (s *Stream) Recv(ctx context.Context) (string, error) {
	if s.closed {
		return "", io.EOF
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return "", &StreamError{Message: "failed to read stream", Cause: err}
			}
			return "", io.EOF
		}

		line := s.scanner.Text()
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			return "", io.EOF
		}

		var chunk streamResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", &ParseError{RawResponse: data, Cause: err}
		}

		if content := chunk.content(); content != "" {
			return content, nil
		}
		// Role-only and finish chunks carry no text; keep reading.
	}
}

// Close releases the underlying connection. Safe to call twice.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
