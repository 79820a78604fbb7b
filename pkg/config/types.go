package config

import "time"

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// Host is the address to bind to.
	// Default: "0.0.0.0"
	Host string `yaml:"host"`

	// Port is the TCP port to listen on.
	// Default: 8080
	Port int `yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of
	// the response. Zero disables the timeout; streaming responses stay
	// open for as long as the upstream keeps producing chunks, so the
	// default leaves this unset.
	// Default: 0
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are abandoned.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
// The browser chat UI is served from a separate origin, so CORS defaults
// to enabled with a permissive origin list.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is the list of allowed origins. Use ["*"] to allow
	// all origins.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the maximum age in seconds for preflight caching.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// GaiaNetConfig contains configuration for the upstream GaiaNet node.
// BaseURL and APIKey are both required for the upstream client to be
// initialized; when either is missing the gateway still starts, but chat
// requests fail with a configuration error.
type GaiaNetConfig struct {
	// BaseURL is the base URL of the OpenAI-compatible API endpoint.
	// Example: "https://node.gaianet.network/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the authentication key sent as a bearer token.
	APIKey string `yaml:"api_key"`

	// Model is the default model identifier used when a request does not
	// name one.
	// Default: "default"
	Model string `yaml:"model"`

	// Timeout is the maximum duration for a single upstream request.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for transient
	// upstream failures.
	// Default: 2
	MaxRetries int `yaml:"max_retries"`
}

// SecurityConfig contains configuration for the security pipeline.
type SecurityConfig struct {
	// RateLimitPerHour is the number of requests a single client may make
	// within the rate-limit window before being blocked.
	// Default: 100
	RateLimitPerHour int `yaml:"rate_limit_per_hour"`

	// RateLimitWindow is the sliding window over which requests are
	// counted.
	// Default: 1h
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`

	// MaxMessageLength is the maximum length of a single message
	// content, counted in characters.
	// Default: 10000
	MaxMessageLength int `yaml:"max_message_length"`

	// MaxMessages is the maximum number of messages in a single request.
	// Default: 100
	MaxMessages int `yaml:"max_messages"`

	// PrivacyFilterEnabled controls whether inbound content is checked
	// for sensitive data and outbound content is redacted.
	// Default: true
	PrivacyFilterEnabled bool `yaml:"privacy_filter_enabled"`

	// PatternFile is an optional path to a YAML file with additional
	// redaction patterns. When set, the file is watched and reloaded on
	// change.
	PatternFile string `yaml:"pattern_file"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the /metrics endpoint is exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	// Default: "gaianet"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`
}
