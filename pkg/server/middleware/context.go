package middleware

import (
	"context"
	"net"
	"net/http"
)

// contextKey is a private type for context keys defined in this
// package, so they cannot collide with keys from other packages.
type contextKey string

const (
	// RequestIDKey holds the request's correlation ID.
	RequestIDKey contextKey = "request_id"

	// ClientIDKey holds the client identifier used for rate limiting.
	ClientIDKey contextKey = "client_id"
)

// GetRequestID extracts the request ID from the context. Returns the
// empty string if not set.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetClientID extracts the rate-limit client identifier from the
// context. Returns the empty string if not set.
func GetClientID(ctx context.Context) string {
	if id, ok := ctx.Value(ClientIDKey).(string); ok {
		return id
	}
	return ""
}

// ClientInfo stores the derived client identifier in the context so
// the logger and the rate-limit gate agree on it.
func ClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ClientIDKey, ClientID(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientID derives the rate-limit identifier for a request: the
// X-Real-IP header when a reverse proxy sets it, otherwise the
// connection's remote address without the port.
func ClientID(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
