package watch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Trigger names what started a check run.
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerFile     Trigger = "file"
	TriggerSchedule Trigger = "schedule"
	TriggerConfig   Trigger = "config"
)

// CheckFunc performs one check run.
type CheckFunc func(ctx context.Context, trigger Trigger) error

// Runner serialises check runs.
type Runner struct {
	check  CheckFunc
	logger *slog.Logger

	mu       sync.Mutex
	runs     atomic.Int64
	failures atomic.Int64

	lastMu  sync.RWMutex
	lastErr error
	lastRun time.Time
}

// NewRunner creates a runner around check. A nil logger uses slog.Default.
func NewRunner(check CheckFunc, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		check:  check,
		logger: logger.With("component", "watch.runner"),
	}
}

// Run performs one check, waiting for any run in progress to finish first.
// A cancelled context skips the run.
func (r *Runner) Run(ctx context.Context, trigger Trigger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.runs.Add(1)
	err := r.check(ctx, trigger)

	r.lastMu.Lock()
	r.lastErr = err
	r.lastRun = time.Now()
	r.lastMu.Unlock()

	if err != nil {
		r.failures.Add(1)
		r.logger.Debug("check run failed", "trigger", string(trigger), "error", err)
	}
	return err
}

// Trigger adapts Run into a callback for FileWatcher and Scheduler.
// Errors are already reported by the check itself.
func (r *Runner) Trigger(trigger Trigger) func(ctx context.Context) {
	return func(ctx context.Context) {
		_ = r.Run(ctx, trigger)
	}
}

// Runs returns how many checks have run.
func (r *Runner) Runs() int64 {
	return r.runs.Load()
}

// Failures returns how many checks returned an error.
func (r *Runner) Failures() int64 {
	return r.failures.Load()
}

// LastError returns the error of the most recent run, or nil.
func (r *Runner) LastError() error {
	r.lastMu.RLock()
	defer r.lastMu.RUnlock()
	return r.lastErr
}

// LastRun returns when the most recent run finished; zero before the first.
func (r *Runner) LastRun() time.Time {
	r.lastMu.RLock()
	defer r.lastMu.RUnlock()
	return r.lastRun
}
