package config

import "fmt"

// Config is the root configuration structure for the GaiaNet chat gateway.
// It contains all configuration sections for the HTTP server, the upstream
// GaiaNet endpoint, the security pipeline, and telemetry.
type Config struct {
	// Server contains HTTP server configuration including bind address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// GaiaNet contains configuration for the upstream OpenAI-compatible
	// chat completion endpoint.
	GaiaNet GaiaNetConfig `yaml:"gaianet"`

	// Security contains configuration for request validation, the
	// privacy filter, and per-client rate limiting.
	Security SecurityConfig `yaml:"security"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ListenAddress returns the host:port pair the server binds to.
func (c *ServerConfig) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfigured reports whether the upstream client can be
// initialized from this configuration.
func (c *GaiaNetConfig) UpstreamConfigured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}
