package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dolla-nz/centsync/internal/app"
	"github.com/dolla-nz/centsync/internal/jobs"
	"github.com/dolla-nz/centsync/internal/jobs/inmemory"
	"github.com/dolla-nz/centsync/internal/logger"
	"github.com/dolla-nz/centsync/internal/scheduler"
)

func main() {
	// Initialize logger
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	loc, err := time.LoadLocation(a.Config.Sync.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", a.Config.Sync.Timezone).Msg("Invalid timezone")
	}

	// Initialize job store and queue
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	log.Info().Int("hour", a.Config.Sync.Hour).Str("timezone", a.Config.Sync.Timezone).Msg("Starting worker service")

	// Create job handler that runs one sync cycle per job
	handler := func(ctx context.Context, job jobs.Job) error {
		cycleJob, ok := job.(*jobs.SyncCycleJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", cycleJob.JobID).
			Str("trigger", cycleJob.Trigger).
			Msg("Processing sync cycle")

		res, err := a.Orchestrator.RunCycle(ctx)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", cycleJob.JobID).
				Msg("Sync cycle failed")
			return err
		}

		log.Info().
			Str("job_id", cycleJob.JobID).
			Int("new_accounts", res.NewAccounts).
			Int("transactions", res.Transactions).
			Int("rule_updates", res.RuleUpdates).
			Msg("Sync cycle completed")
		return nil
	}

	// Start consuming jobs
	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	// Start the daily trigger
	sched := scheduler.New(jobQueue, a.Props, a.Config.Sync.Hour, loc)
	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Scheduler stopped")
		}
	}()

	log.Info().Msg("Worker service started, waiting for scheduled cycles...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	// Cancel context to stop the scheduler and workers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	// Log the session's cycle history so failures are visible at a glance.
	completed, _ := jobStore.ListJobs(shutdownCtx, jobs.JobFilter{Status: jobs.JobStatusCompleted})
	failed, err := jobStore.ListJobs(shutdownCtx, jobs.JobFilter{Status: jobs.JobStatusFailed})
	if err == nil {
		for _, j := range failed {
			log.Warn().Str("job_id", j.JobID).Str("error", j.Error).Msg("Sync cycle failed this session")
		}
		log.Info().Int("completed", len(completed)).Int("failed", len(failed)).Msg("Cycle history")
	}

	log.Info().Msg("Worker service stopped")
}
