package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gateway",
	Short: "GaiaNet chat gateway",
	Long: `The GaiaNet chat gateway is a security-focused HTTP backend for chat
applications built on GaiaNet nodes.

Every request passes through:
  - Request validation (model name, roles, message and parameter limits)
  - Content sanitization (script tag and injection stripping)
  - PII detection and redaction (credit cards, SSNs, emails, credentials)
  - Sliding-window rate limiting with permanent blocking of abusers

Configuration comes from an optional YAML file overridden by
environment variables (GAIANET_BASE_URL, GAIANET_API_KEY, ...), so the
gateway runs unchanged in containers and on bare hosts.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}
