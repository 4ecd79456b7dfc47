package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs jobs on cron expressions.
//
// Common expressions:
//   - "*/5 * * * *"  - Every five minutes
//   - "0 * * * *"    - Hourly
//   - "@daily"       - Once a day at midnight
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
	jobs    map[string]cron.EntryID

	// ctx must not be guarded by mu: Stop holds mu while jobs drain.
	ctx atomic.Pointer[runContext]
}

// NewScheduler creates a scheduler. A nil logger uses slog.Default.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger.With("component", "watch.scheduler"),
		jobs:   make(map[string]cron.EntryID),
	}
}

// Add registers a named job. fn receives the context passed to Start.
func (s *Scheduler) Add(name, spec string, fn func(ctx context.Context)) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already scheduled", name)
	}

	job := &scheduledJob{name: name, fn: fn, logger: s.logger, scheduler: s}
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return fmt.Errorf("failed to schedule %q: %w", name, err)
	}

	s.jobs[name] = id
	return nil
}

// Start starts the cron loop and stops it when ctx is cancelled.
// Starting with no jobs is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if len(s.jobs) == 0 {
		s.logger.Info("no scheduled jobs, scheduler not started")
		return
	}

	s.ctx.Store(&runContext{ctx: ctx})
	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started", "jobs", len(s.jobs))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	done := s.cron.Stop()
	<-done.Done()
	s.running = false
	s.logger.Info("scheduler stopped")
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next time the named job runs, or nil if it is not
// scheduled or the scheduler has not started.
func (s *Scheduler) NextRun(name string) *time.Time {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	next := s.cron.Entry(id).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// context returns the context passed to Start.
func (s *Scheduler) context() context.Context {
	if rc := s.ctx.Load(); rc != nil {
		return rc.ctx
	}
	return context.Background()
}

type runContext struct {
	ctx context.Context
}

type scheduledJob struct {
	name      string
	fn        func(ctx context.Context)
	logger    *slog.Logger
	scheduler *Scheduler
}

// Run implements cron.Job.
func (j *scheduledJob) Run() {
	ctx := j.scheduler.context()
	if ctx.Err() != nil {
		return
	}

	j.logger.Debug("running scheduled job", "job", j.name)
	j.fn(ctx)
}
