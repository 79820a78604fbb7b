package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from an optional YAML file and applies
// environment variable overrides. Environment variables always take
// precedence over file-based configuration.
//
// The loading sequence is:
//  1. Start from defaults
//  2. Merge YAML from file (if path is non-empty)
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func Load(path string) (*Config, error) {
	cfg := NewDefault()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
		// Re-fill fields the file reset to zero values.
		ApplyDefaults(cfg)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a configuration from environment variables only.
func FromEnv() (*Config, error) {
	return Load("")
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. The variable names match the original deployment
// environment of the backend (GAIANET_*, SERVER_*, RATE_LIMIT_PER_HOUR,
// MAX_MESSAGE_LENGTH, ENABLE_DATA_PRIVACY_FILTER).
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = i
		}
	}

	// Upstream overrides
	if val := os.Getenv("GAIANET_BASE_URL"); val != "" {
		cfg.GaiaNet.BaseURL = val
	}
	if val := os.Getenv("GAIANET_API_KEY"); val != "" {
		cfg.GaiaNet.APIKey = val
	}
	if val := os.Getenv("GAIANET_MODEL"); val != "" {
		cfg.GaiaNet.Model = val
	}
	if val := os.Getenv("GAIANET_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.GaiaNet.Timeout = d
		}
	}

	// Security overrides
	if val := os.Getenv("RATE_LIMIT_PER_HOUR"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Security.RateLimitPerHour = i
		}
	}
	if val := os.Getenv("MAX_MESSAGE_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Security.MaxMessageLength = i
		}
	}
	if val := os.Getenv("ENABLE_DATA_PRIVACY_FILTER"); val != "" {
		cfg.Security.PrivacyFilterEnabled = parseBoolDefault(val, true)
	}
	if val := os.Getenv("REDACTION_PATTERN_FILE"); val != "" {
		cfg.Security.PatternFile = val
	}

	// Telemetry overrides
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("METRICS_ENABLED"); val != "" {
		cfg.Telemetry.Metrics.Enabled = parseBoolDefault(val, true)
	}
}

// parseBoolDefault parses common boolean spellings, falling back to def.
// "true"/"1"/"yes" enable, "false"/"0"/"no" disable, case-insensitively.
func parseBoolDefault(val string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}
