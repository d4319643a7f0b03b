// Package janitor runs the cron-scheduled sweep that evicts expired entries
// from the content-addressed disk cache. It runs as a background job until
// its context is cancelled.
package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/cache"
)

// Sweeper is the subset of *cache.Cache the janitor depends on.
type Sweeper interface {
	Clear(cache.ClearOptions) (cache.ClearResult, error)
}

// EvictionRecorder is notified of how many entries a sweep removed, so a
// caller can feed the count into a metrics collector.
type EvictionRecorder interface {
	RecordCacheEvictions(n int)
}

// Janitor schedules periodic expired-entry sweeps of a cache.
type Janitor struct {
	cache    Sweeper
	schedule string
	metrics  EvictionRecorder
	logger   *slog.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// New creates a Janitor for cache, run on the given standard cron
// expression (e.g. "0 3 * * *" for daily at 3 AM). An empty schedule is
// valid; Start then does nothing, matching "janitor runs only when a
// non-empty cron expression is configured".
func New(c Sweeper, schedule string, metrics EvictionRecorder, logger *slog.Logger) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{
		cache:    c,
		schedule: schedule,
		metrics:  metrics,
		logger:   logger.With("component", "cache.janitor"),
		cron:     cron.New(),
	}
}

// Start begins the scheduled sweep. If no schedule is configured it returns
// nil immediately without starting anything. The background cron stops
// itself when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.schedule == "" {
		j.logger.Info("cache janitor schedule not configured, skipping")
		return nil
	}

	if _, err := cron.ParseStandard(j.schedule); err != nil {
		return fmt.Errorf("janitor: invalid cron schedule %q: %w", j.schedule, err)
	}

	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.sweep(ctx)
	}); err != nil {
		return fmt.Errorf("janitor: schedule sweep: %w", err)
	}

	j.cron.Start()
	j.running = true

	j.logger.Info("cache janitor started", "schedule", j.schedule)

	go func() {
		<-ctx.Done()
		j.Stop()
	}()

	return nil
}

func (j *Janitor) sweep(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	result, err := j.cache.Clear(cache.ClearOptions{ExpiredOnly: true})
	if err != nil {
		j.logger.Error("cache sweep failed", "error", err)
		return
	}

	if j.metrics != nil {
		j.metrics.RecordCacheEvictions(result.Cleared)
	}

	if result.Cleared > 0 {
		j.logger.Info("cache sweep completed", "evicted", result.Cleared)
	} else {
		j.logger.Debug("cache sweep completed, nothing evicted")
	}
}

// Stop stops the scheduler and waits for any in-flight sweep to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron != nil && j.running {
		done := j.cron.Stop()
		<-done.Done()
		j.running = false
		j.logger.Info("cache janitor stopped")
	}
}

// IsRunning reports whether the janitor's cron scheduler is active.
func (j *Janitor) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}

// NextRun returns the next scheduled sweep time, or nil if the janitor has
// no active schedule.
func (j *Janitor) NextRun() *time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cron == nil {
		return nil
	}

	entries := j.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
