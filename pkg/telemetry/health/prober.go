package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Prober runs a registered check on a cron schedule and reports each
// outcome through a callback. The gateway uses it to keep the backend_up
// gauge current without waiting for a readiness request.
type Prober struct {
	checker  *Checker
	name     string
	schedule string
	onResult func(up bool)

	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
	lastUp  *bool
}

// NewProber creates a prober for the named check.
// onResult may be nil.
func NewProber(checker *Checker, name, schedule string, onResult func(up bool)) *Prober {
	return &Prober{
		checker:  checker,
		name:     name,
		schedule: schedule,
		onResult: onResult,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "health.prober", "check", name),
	}
}

// Start schedules the probe and runs it once immediately.
//
// Schedules use standard cron syntax or descriptors:
//   - "@every 30s"
//   - "*/5 * * * *"
//
// An empty schedule disables the prober.
func (p *Prober) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == "" {
		p.logger.Info("probe schedule not configured, skipping prober")
		return nil
	}

	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid probe schedule %q: %w", p.schedule, err)
	}

	if _, err := p.cron.AddFunc(p.schedule, func() { p.Probe(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule probe: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("backend prober started", "schedule", p.schedule)

	go p.Probe(ctx)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Probe runs the check once and reports the result. State changes are
// logged; repeated identical results are not.
func (p *Prober) Probe(ctx context.Context) bool {
	result, ok := p.checker.Run(ctx, p.name)
	if !ok {
		p.logger.Warn("probe check not registered")
		return false
	}

	up := result.Status == StatusOK

	p.mu.Lock()
	changed := p.lastUp == nil || *p.lastUp != up
	p.lastUp = &up
	p.mu.Unlock()

	if changed {
		if up {
			p.logger.Info("backend reachable", "duration", result.Duration)
		} else {
			p.logger.Warn("backend unreachable", "error", result.Message)
		}
	}

	if p.onResult != nil {
		p.onResult(up)
	}
	return up
}

// Stop stops the scheduler and waits for a running probe to finish.
func (p *Prober) Stop() {
	p.mu.Lock()
	running := p.running
	p.running = false
	p.mu.Unlock()

	if running {
		<-p.cron.Stop().Done()
		p.logger.Info("backend prober stopped")
	}
}

// IsRunning returns true if the prober is scheduled.
func (p *Prober) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}

// NextRun returns the next scheduled probe time, or nil if not scheduled.
func (p *Prober) NextRun() *time.Time {
	entries := p.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
