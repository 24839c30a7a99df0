// Package logging builds the process-wide log/slog logger.
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "request forwarded", "status", 200)
//	// {"level":"INFO","msg":"request forwarded","status":200,"request_id":"req-123"}
//
// When the context carries an OpenTelemetry span, trace_id and span_id are
// appended as well.
package logging
