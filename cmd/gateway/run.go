package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"gaianet-hq/gateway/pkg/chat"
	"gaianet-hq/gateway/pkg/config"
	"gaianet-hq/gateway/pkg/security"
	"gaianet-hq/gateway/pkg/server"
	"gaianet-hq/gateway/pkg/telemetry/logging"
	"gaianet-hq/gateway/pkg/telemetry/metrics"
	"gaianet-hq/gateway/pkg/upstream"
)

var runFlags struct {
	listen   string
	logLevel string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gateway server",
	Long: `Start the gateway server with the given configuration.

Examples:
  # Environment configuration only
  gateway run

  # With a config file
  gateway run --config /etc/gaianet/gateway.yaml

  # Override the listen host
  gateway run --listen 127.0.0.1`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listen, "listen", "l", "", "override listen host")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.FromEnv()
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listen != "" {
		cfg.Server.Host = runFlags.listen
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.Setup(cfg.Telemetry.Logging, nil)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	suite, err := security.New(cfg.Security, logger)
	if err != nil {
		return fmt.Errorf("failed to build security suite: %w", err)
	}

	client, err := upstream.NewClient(cfg.GaiaNet, logger)
	if err != nil {
		if !errors.Is(err, upstream.ErrNotConfigured) {
			return fmt.Errorf("failed to create upstream client: %w", err)
		}
		logger.Warn("GaiaNet client not initialized, chat requests will fail",
			"error", err,
		)
		client = nil
	}

	collector := metrics.NewCollector(cfg.Telemetry.Metrics)
	orchestrator := chat.New(client, suite, collector, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hourly abuse summary.
	scheduler := cron.New()
	if err := suite.Monitor.ScheduleSummary(scheduler); err != nil {
		return fmt.Errorf("failed to schedule rate limit summary: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Hot reload of custom redaction patterns.
	if cfg.Security.PatternFile != "" {
		go func() {
			if err := suite.WatchPatterns(ctx); err != nil {
				logger.Error("Pattern watcher stopped", "error", err)
			}
		}()
	}

	srv := server.New(cfg, orchestrator, suite, collector, Version)
	return srv.Start(ctx)
}
