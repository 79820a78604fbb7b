package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	// Field is the dotted path of the invalid field.
	Field string

	// Message describes what is invalid about the field.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration field %q: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values. It returns the
// first error encountered. A missing upstream base URL or API key is not
// an error here: the gateway is allowed to start without an upstream and
// reports "not configured" on chat requests instead.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", cfg.Server.Port),
		}
	}

	if cfg.GaiaNet.BaseURL != "" {
		u, err := url.Parse(cfg.GaiaNet.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &ValidationError{
				Field:   "gaianet.base_url",
				Message: fmt.Sprintf("must be an absolute URL, got %q", cfg.GaiaNet.BaseURL),
			}
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return &ValidationError{
				Field:   "gaianet.base_url",
				Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
			}
		}
	}

	if cfg.Security.RateLimitPerHour < 1 {
		return &ValidationError{
			Field:   "security.rate_limit_per_hour",
			Message: "must be at least 1",
		}
	}
	if cfg.Security.RateLimitWindow <= 0 {
		return &ValidationError{
			Field:   "security.rate_limit_window",
			Message: "must be a positive duration",
		}
	}
	if cfg.Security.MaxMessageLength < 1 {
		return &ValidationError{
			Field:   "security.max_message_length",
			Message: "must be at least 1",
		}
	}
	if cfg.Security.MaxMessages < 1 {
		return &ValidationError{
			Field:   "security.max_messages",
			Message: "must be at least 1",
		}
	}

	switch strings.ToLower(cfg.Telemetry.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Telemetry.Logging.Level),
		}
	}

	switch strings.ToLower(cfg.Telemetry.Logging.Format) {
	case "json", "text":
	default:
		return &ValidationError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Telemetry.Logging.Format),
		}
	}

	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		return &ValidationError{
			Field:   "telemetry.metrics.path",
			Message: "must start with /",
		}
	}

	return nil
}
