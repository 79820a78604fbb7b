// Package security assembles the gateway's request screening
// components: content sanitization, PII detection and redaction,
// request validation, and rate limiting with permanent blocking.
package security

import (
	"context"
	"fmt"
	"log/slog"

	"gaianet-hq/gateway/pkg/config"
	"gaianet-hq/gateway/pkg/security/privacy"
	"gaianet-hq/gateway/pkg/security/ratelimit"
	"gaianet-hq/gateway/pkg/security/sanitize"
	"gaianet-hq/gateway/pkg/security/validate"
)

// Suite bundles the security components built from one configuration.
// All components are safe for concurrent use and shared across
// requests.
type Suite struct {
	Sanitizer *sanitize.Sanitizer
	Privacy   *privacy.Filter
	Validator *validate.Validator
	Monitor   *ratelimit.Monitor

	patternFile string
	logger      *slog.Logger
}

// New builds a Suite from the security configuration. A configured
// pattern file is loaded eagerly so startup fails on an unreadable
// file rather than silently serving without custom patterns.
func New(cfg config.SecurityConfig, logger *slog.Logger) (*Suite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sanitizer := sanitize.New()
	filter := privacy.New(cfg.PrivacyFilterEnabled, logger)
	if cfg.PatternFile != "" {
		if err := filter.LoadPatternFile(cfg.PatternFile); err != nil {
			return nil, fmt.Errorf("failed to load redaction patterns: %w", err)
		}
	}

	return &Suite{
		Sanitizer:   sanitizer,
		Privacy:     filter,
		Validator:   validate.New(sanitizer, cfg.MaxMessageLength, cfg.MaxMessages),
		Monitor:     ratelimit.New(cfg.RateLimitPerHour, cfg.RateLimitWindow, logger),
		patternFile: cfg.PatternFile,
		logger:      logger,
	}, nil
}

// WatchPatterns hot-reloads the custom pattern file until ctx is
// cancelled. It returns immediately if no pattern file is configured.
func (s *Suite) WatchPatterns(ctx context.Context) error {
	if s.patternFile == "" {
		return nil
	}
	return privacy.NewPatternWatcher(s.Privacy, s.patternFile, s.logger).Watch(ctx)
}
