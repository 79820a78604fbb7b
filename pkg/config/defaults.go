package config

import "time"

// Default values applied to zero-valued configuration fields.
const (
	DefaultHost             = "0.0.0.0"
	DefaultPort             = 8080
	DefaultReadTimeout      = 30 * time.Second
	DefaultIdleTimeout      = 120 * time.Second
	DefaultShutdownTimeout  = 30 * time.Second
	DefaultModel            = "default"
	DefaultUpstreamTimeout  = 60 * time.Second
	DefaultMaxRetries       = 2
	DefaultRateLimitPerHour = 100
	DefaultRateLimitWindow  = time.Hour
	DefaultMaxMessageLength = 10000
	DefaultMaxMessages      = 100
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "gaianet"
	DefaultMetricsSubsystem = "gateway"
)

// NewDefault returns a configuration populated with all default values.
// The privacy filter, CORS, and metrics are enabled by default.
func NewDefault() *Config {
	cfg := &Config{}
	cfg.Security.PrivacyFilterEnabled = true
	cfg.Server.CORS.Enabled = true
	cfg.Telemetry.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with default values.
// Boolean fields (privacy filter, CORS, metrics enablement) are left
// untouched; use NewDefault for a fully defaulted configuration.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = 3600
	}

	if cfg.GaiaNet.Model == "" {
		cfg.GaiaNet.Model = DefaultModel
	}
	if cfg.GaiaNet.Timeout == 0 {
		cfg.GaiaNet.Timeout = DefaultUpstreamTimeout
	}
	if cfg.GaiaNet.MaxRetries == 0 {
		cfg.GaiaNet.MaxRetries = DefaultMaxRetries
	}

	if cfg.Security.RateLimitPerHour == 0 {
		cfg.Security.RateLimitPerHour = DefaultRateLimitPerHour
	}
	if cfg.Security.RateLimitWindow == 0 {
		cfg.Security.RateLimitWindow = DefaultRateLimitWindow
	}
	if cfg.Security.MaxMessageLength == 0 {
		cfg.Security.MaxMessageLength = DefaultMaxMessageLength
	}
	if cfg.Security.MaxMessages == 0 {
		cfg.Security.MaxMessages = DefaultMaxMessages
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
