package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"async-job-service/internal/entity"
	"async-job-service/internal/queue"
	"async-job-service/internal/store"
)

// JobService glues the record store and the queue together for the two
// public operations: submit and status.
type JobService struct {
	store store.Store
	queue queue.Queue
}

func NewJobService(s store.Store, q queue.Queue) *JobService {
	return &JobService{store: s, queue: q}
}

// Submit creates a pending record and enqueues its id. It returns as
// soon as the item is queued; it never waits for a worker.
func (s *JobService) Submit(ctx context.Context) (*entity.Job, error) {
	j, err := s.store.Create(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ctx, j.ID); err != nil {
		// the record exists but will never run; the caller sees the
		// submission as failed and retries
		return nil, fmt.Errorf("enqueue job %s: %w", j.ID, err)
	}

	return j, nil
}

// Status is a read-only lookup; it never mutates the record.
func (s *JobService) Status(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return s.store.Get(ctx, id)
}
