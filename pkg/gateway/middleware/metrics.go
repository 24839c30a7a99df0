package middleware

import (
	"net/http"
	"time"

	"zeedzad/web/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and latency. A nil collector is
// allowed.
func MetricsMiddleware(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			c.RecordHTTPRequest(r.Method, rw.statusCode, time.Since(start))
		})
	}
}
