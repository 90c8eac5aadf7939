// Package scheduler queues one sync cycle per day at a configured local
// hour, standing in for the time-driven trigger of the hosted version.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dolla-nz/centsync/internal/jobs"
	"github.com/dolla-nz/centsync/internal/logger"
)

// Toggle reports whether automatic syncing is enabled.
type Toggle interface {
	AutoSyncEnabled() bool
}

// Scheduler publishes a scheduled sync cycle once per day.
type Scheduler struct {
	publisher jobs.Publisher
	toggle    Toggle
	hour      int
	loc       *time.Location

	now func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler that fires at hour o'clock in loc.
func New(publisher jobs.Publisher, toggle Toggle, hour int, loc *time.Location, opts ...Option) *Scheduler {
	s := &Scheduler{
		publisher: publisher,
		toggle:    toggle,
		hour:      hour,
		loc:       loc,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextRun returns the next time the daily trigger fires after now.
func (s *Scheduler) NextRun() time.Time {
	now := s.now().In(s.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Tick fires one trigger: if automatic syncing is enabled a scheduled sync
// cycle is published, otherwise nothing happens. It returns whether a job
// was published.
func (s *Scheduler) Tick(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	if !s.toggle.AutoSyncEnabled() {
		log.Info().Msg("Automatic sync disabled, skipping scheduled cycle")
		return false, nil
	}

	job := &jobs.SyncCycleJob{Trigger: jobs.TriggerScheduled}
	if err := s.publisher.PublishSyncCycle(ctx, job); err != nil {
		return false, fmt.Errorf("Tick: %w", err)
	}
	log.Info().Str("job_id", job.JobID).Msg("Scheduled sync cycle published")
	return true, nil
}

// Run blocks, firing Tick at every daily trigger time until the context is
// cancelled. Publish failures are logged and the loop keeps going.
func (s *Scheduler) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for {
		next := s.NextRun()
		wait := next.Sub(s.now())
		log.Info().Time("next_run", next).Msg("Waiting for next scheduled sync")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := s.Tick(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to publish scheduled sync cycle")
		}
	}
}
