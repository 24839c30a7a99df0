// Package middleware provides the HTTP middleware chain for the gateway
// server.
//
// # Middleware
//
//   - RecoveryMiddleware: converts panics into 500 {"error": ...}
//   - LoggingMiddleware: one structured log line per request
//   - RequestIDMiddleware: X-Request-ID generation and propagation
//   - CORSMiddleware: CORS headers and preflight handling
//   - MetricsMiddleware: request count and latency
//
// All middleware have the signature func(http.Handler) http.Handler and
// can be passed to chi's Router.Use.
package middleware
