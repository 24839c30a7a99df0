package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"zeedzad/web/pkg/gateway"
)

// RecoveryMiddleware recovers from panics in handlers and answers 500 in the
// backend's error envelope. The stack trace is logged, never returned.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				gateway.WriteError(w, http.StatusInternalServerError,
					"An internal error occurred. Please try again later.")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
