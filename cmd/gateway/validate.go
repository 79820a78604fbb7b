package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gaianet-hq/gateway/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and exit",
	Long: `Load the configuration from the given file and environment, run full
validation, and report the effective settings without starting the
server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}

		fmt.Println("Configuration valid")
		fmt.Printf("  listen address:    %s\n", cfg.Server.ListenAddress())
		fmt.Printf("  upstream:          %s\n", upstreamSummary(cfg))
		fmt.Printf("  default model:     %s\n", cfg.GaiaNet.Model)
		fmt.Printf("  rate limit:        %d per %s\n", cfg.Security.RateLimitPerHour, cfg.Security.RateLimitWindow)
		fmt.Printf("  max message chars: %d\n", cfg.Security.MaxMessageLength)
		fmt.Printf("  privacy filter:    %t\n", cfg.Security.PrivacyFilterEnabled)
		if cfg.Security.PatternFile != "" {
			fmt.Printf("  pattern file:      %s\n", cfg.Security.PatternFile)
		}
		return nil
	},
}

func upstreamSummary(cfg *config.Config) string {
	if !cfg.GaiaNet.UpstreamConfigured() {
		return "not configured (chat requests will fail)"
	}
	return cfg.GaiaNet.BaseURL
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
