package inmemory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dolla-nz/centsync/internal/jobs"
)

func TestQueue_PublishAndProcess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	q := NewQueue(4, store)

	processed := make(chan string, 1)
	err := q.Start(ctx, func(ctx context.Context, job jobs.Job) error {
		processed <- job.GetID()
		return nil
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	job := &jobs.SyncCycleJob{Trigger: jobs.TriggerManual}
	if err := q.PublishSyncCycle(ctx, job); err != nil {
		t.Fatalf("PublishSyncCycle failed: %v", err)
	}
	if job.JobID == "" {
		t.Fatal("expected a job ID to be assigned")
	}

	select {
	case id := <-processed:
		if id != job.JobID {
			t.Errorf("expected job %s, got %s", job.JobID, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := q.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	completed, err := store.ListJobs(ctx, jobs.JobFilter{Status: jobs.JobStatusCompleted})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(completed) != 1 || completed[0].JobID != job.JobID {
		t.Errorf("expected the job recorded as completed, got %+v", completed)
	}
}

func TestQueue_PublishAfterCloseFails(t *testing.T) {
	q := NewQueue(1, nil)
	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := q.PublishSyncCycle(context.Background(), &jobs.SyncCycleJob{}); err == nil {
		t.Fatal("expected error on closed queue")
	}
}

func TestStore_ListJobsFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for i := 0; i < 3; i++ {
		trigger := jobs.TriggerScheduled
		if i == 0 {
			trigger = jobs.TriggerManual
		}
		err := store.SaveJob(ctx, &jobs.SyncCycleJob{
			JobID:   fmt.Sprintf("job-%d", i),
			Trigger: trigger,
			Status:  jobs.JobStatusPending,
		})
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}
	}

	scheduled, err := store.ListJobs(ctx, jobs.JobFilter{Trigger: jobs.TriggerScheduled})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(scheduled) != 2 {
		t.Errorf("expected 2 scheduled jobs, got %d", len(scheduled))
	}
}
