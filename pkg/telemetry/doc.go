// Package telemetry groups the observability packages of the web layer.
//
// # Components
//
//   - logging: slog setup; request and trace ids are added to every record
//   - metrics: Prometheus collector for the gateway, resolution and backend probe
//   - tracing: OpenTelemetry tracer with OTLP export and W3C propagation
//   - health: liveness/readiness checks and the scheduled backend prober
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, _ := logging.Setup(logging.Config{Level: cfg.Telemetry.Logging.Level})
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("backend", client.Ping)
//
// A nil *metrics.Collector and a nil *tracing.Tracer are both valid and do
// nothing, so components accept them as optional dependencies.
package telemetry
