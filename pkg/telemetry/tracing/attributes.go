package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used across spans.
const (
	AttrQuery       = attribute.Key("resolution.query")
	AttrVideoID     = attribute.Key("video.id")
	AttrForwardMode = attribute.Key("gateway.mode")
	AttrUpstreamURL = attribute.Key("gateway.upstream_url")
)

// WithQuery tags a span with a game search query.
func WithQuery(q string) trace.SpanStartOption {
	return trace.WithAttributes(AttrQuery.String(q))
}

// WithVideoID tags a span with the video being matched.
func WithVideoID(id string) trace.SpanStartOption {
	return trace.WithAttributes(AttrVideoID.String(id))
}

// ForwardAttributes describes a gateway forward.
func ForwardAttributes(mode, upstreamURL string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrForwardMode.String(mode),
		AttrUpstreamURL.String(upstreamURL),
	}
}
