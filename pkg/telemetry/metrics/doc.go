// Package metrics provides Prometheus metrics for the web layer.
//
// # Metrics Categories
//
//   - HTTP: requests served by the middleware chain
//   - Gateway: forwarded requests by mode, upstream latency, swagger fallbacks
//   - Resolution: searches by result source, matches by outcome
//   - Backend: availability gauge maintained by the scheduled prober
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordForward("PUT", "json", 200, 35*time.Millisecond)
//	collector.RecordSearch("external", 120*time.Millisecond)
//
//	http.Handle("/metrics", collector.Handler())
//
// A nil *Collector is valid and records nothing.
package metrics
