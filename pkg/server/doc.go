// Package server provides the HTTP server that fronts the video backend.
//
// It ties together the gateway forwarder, the middleware chain and the
// health and metrics endpoints, and manages the server lifecycle.
//
// # Basic Usage
//
//	cfg := config.GetConfig()
//
//	fwd, err := gateway.New(cfg.Gateway.BackendBaseURL)
//	if err != nil {
//	    return err
//	}
//
//	srv := server.NewServer(&cfg.Gateway, fwd,
//	    server.WithHealthChecker(checker),
//	    server.WithMetrics(collector, &cfg.Telemetry.Metrics),
//	)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start returns after a graceful shutdown triggered by ctx, SIGINT/SIGTERM
// or Stop.
//
// # Routes
//
//   - /api/* - forwarded to the backend
//   - GET /health - liveness probe (always 200)
//   - GET /ready - readiness probe (503 while the backend is unreachable)
//   - GET /version - build information
//   - GET /metrics - Prometheus metrics (path configurable)
//
// Anything else answers 404 {"error": "not found"}.
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost first):
//  1. Recovery: converts panics into 500 responses
//  2. RequestID: assigns X-Request-ID
//  3. Logging: one log line per request
//  4. Metrics: request count and latency
//  5. CORS: headers and preflight handling
//  6. Tracing: server span per request
//
// No per-request timeout is applied; uploads and slow backend calls run to
// completion.
package server
