// Package server provides the HTTP server that fronts the video backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/gateway"
	"zeedzad/web/pkg/gateway/middleware"
	"zeedzad/web/pkg/telemetry/health"
	"zeedzad/web/pkg/telemetry/metrics"
	"zeedzad/web/pkg/telemetry/tracing"

	"github.com/go-chi/chi/v5"
)

// Server is the gateway HTTP server.
type Server struct {
	config     *config.GatewayConfig
	metricsCfg *config.MetricsConfig
	forwarder  *gateway.Forwarder
	checker    *health.Checker
	collector  *metrics.Collector
	tracer     *tracing.Tracer

	version   string
	commit    string
	buildTime string

	httpServer   *http.Server
	listener     net.Listener
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// Option configures a Server.
type Option func(*Server)

// WithHealthChecker serves /health and /ready from checker.
func WithHealthChecker(checker *health.Checker) Option {
	return func(s *Server) {
		s.checker = checker
	}
}

// WithMetrics records request metrics and serves the metrics endpoint at
// cfg.Path when cfg.Enabled.
func WithMetrics(collector *metrics.Collector, cfg *config.MetricsConfig) Option {
	return func(s *Server) {
		s.collector = collector
		s.metricsCfg = cfg
	}
}

// WithTracer starts a server span per request.
func WithTracer(t *tracing.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// WithVersion sets the build information served at /version.
func WithVersion(version, commit, buildTime string) Option {
	return func(s *Server) {
		s.version = version
		s.commit = commit
		s.buildTime = buildTime
	}
}

// NewServer creates a new gateway server. Requests under /api/ are handed
// to fwd.
func NewServer(cfg *config.GatewayConfig, fwd *gateway.Forwarder, opts ...Option) *Server {
	s := &Server{
		config:       cfg,
		forwarder:    fwd,
		shutdownChan: make(chan struct{}),
		version:      "dev",
		commit:       "unknown",
		buildTime:    "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.checker == nil {
		s.checker = health.New(0)
	}
	return s
}

// Start starts the HTTP server and blocks until ctx is cancelled, a
// termination signal arrives, Stop is called or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:        s.setupRoutes(),
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}
	s.isRunning = true
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server",
			"address", ln.Addr().String(),
			"backend", s.forwarder.Backend(),
		)

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

		shutdownCtx := ctx
		if s.config.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
			defer cancel()
		}

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()

	// Outermost first.
	r.Use(
		middleware.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.MetricsMiddleware(s.collector),
		middleware.CORSMiddleware(&s.config.CORS),
		tracing.HTTPMiddleware(s.tracer),
	)

	r.Get("/health", s.checker.LivenessHandler())
	r.Get("/ready", s.checker.ReadinessHandler())
	r.Get("/version", health.VersionHandler(s.version, s.commit, s.buildTime))

	if s.collector != nil && s.metricsCfg != nil && s.metricsCfg.Enabled {
		r.Method(http.MethodGet, s.metricsCfg.Path, s.collector.Handler())
	}

	r.Handle("/api/*", s.forwarder)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gateway.WriteError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		gateway.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Addr returns the bound listen address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
