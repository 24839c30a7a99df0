// Package health provides liveness, readiness and version endpoints, plus a
// scheduled prober that keeps track of backend availability.
//
// # Endpoints
//
//   - /health: the process is running
//   - /ready: every registered check passes (503 otherwise)
//   - /version: build information
//
// # Usage
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.RegisterCheck("backend", func(ctx context.Context) error {
//	    return client.Ping(ctx)
//	})
//
//	prober := health.NewProber(checker, "backend", "@every 30s", collector.SetBackendUp)
//	if err := prober.Start(ctx); err != nil {
//	    return err
//	}
package health
