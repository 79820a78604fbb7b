// Package server assembles the gateway's HTTP surface: routing, the
// middleware chain, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"gaianet-hq/gateway/pkg/chat"
	"gaianet-hq/gateway/pkg/config"
	"gaianet-hq/gateway/pkg/security"
	"gaianet-hq/gateway/pkg/server/handlers"
	"gaianet-hq/gateway/pkg/server/middleware"
	"gaianet-hq/gateway/pkg/telemetry/metrics"
)

// Server is the gateway's HTTP server.
type Server struct {
	config       *config.Config
	orchestrator *chat.Orchestrator
	security     *security.Suite
	metrics      *metrics.Collector
	version      string

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.Mutex
	running      bool
}

// New creates a Server.
func New(cfg *config.Config, orchestrator *chat.Orchestrator, suite *security.Suite, collector *metrics.Collector, version string) *Server {
	return &Server{
		config:       cfg,
		orchestrator: orchestrator,
		security:     suite,
		metrics:      collector,
		version:      version,
	}
}

// Start runs the server and blocks until the context is cancelled, a
// shutdown signal arrives, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.running = true

	s.httpServer = &http.Server{
		Addr:         s.config.Server.ListenAddress(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting GaiaNet gateway",
			"address", s.httpServer.Addr,
			"version", s.version,
			"upstream_configured", s.config.GaiaNet.UpstreamConfigured(),
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("Context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown drains in-flight requests within the configured timeout.
// Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.running {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("Initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("Error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.running = false
		s.mu.Unlock()

		slog.Info("Gateway stopped")
	})

	return shutdownErr
}

// Handler builds the route table and middleware chain. Exposed so
// tests can drive the full stack through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/health", handlers.NewHealthHandler(s.orchestrator, s.version))
	mux.Handle("/api/chat", handlers.NewChatHandler(s.orchestrator))
	mux.Handle("/api/chat/stream", handlers.NewStreamHandler(s.orchestrator))

	exempt := []string{"/api/health"}
	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.metrics.Handler())
		exempt = append(exempt, s.config.Telemetry.Metrics.Path)
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitGate(s.security.Monitor, s.metrics, exempt...)(handler)
	handler = middleware.CORS(s.config.Server.CORS)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Logging(s.metrics)(handler)
	handler = middleware.ClientInfo(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(handler)

	return handler
}
