// Package tracing provides OpenTelemetry distributed tracing for the web layer.
//
// Incoming requests carry W3C trace context (traceparent, tracestate) which
// HTTPMiddleware extracts. The gateway and the API client inject the active
// context into every request they send, so a trace started in the browser
// continues through the gateway into the backend.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "resolution.search")
//	defer span.End()
//
// Spans are exported over OTLP gRPC. Sampling is one of always, never or
// ratio, always wrapped in ParentBased.
package tracing
