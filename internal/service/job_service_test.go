package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"async-job-service/internal/entity"
	"async-job-service/internal/queue"
	"async-job-service/internal/service"
	"async-job-service/internal/store"
)

type fakeQueue struct {
	enqueued   []uuid.UUID
	enqueueErr error
}

func (q *fakeQueue) Enqueue(ctx context.Context, id uuid.UUID) error {
	q.enqueued = append(q.enqueued, id)
	return q.enqueueErr
}

func (q *fakeQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	return uuid.Nil, errors.New("not implemented")
}

func TestJobService_SubmitCreatesPendingAndEnqueues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := &fakeQueue{}
	svc := service.NewJobService(s, q)

	j, err := svc.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if j.State != entity.StatePending {
		t.Fatalf("expected pending, got %s", j.State)
	}

	if len(q.enqueued) != 1 || q.enqueued[0] != j.ID {
		t.Fatalf("expected enqueue of %s, got %#v", j.ID, q.enqueued)
	}

	// record is readable before any worker touches it
	got, err := svc.Status(ctx, j.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if got.State != entity.StatePending {
		t.Fatalf("expected pending, got %s", got.State)
	}
}

func TestJobService_SubmitSurfacesQueueUnavailable(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := &fakeQueue{enqueueErr: queue.ErrUnavailable}
	svc := service.NewJobService(s, q)

	_, err := svc.Submit(ctx)
	if !errors.Is(err, queue.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestJobService_SubmitDoesNotWaitForWorkers(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	// real queue, no consumers at all
	svc := service.NewJobService(s, queue.NewMemoryQueue(4))

	done := make(chan struct{})
	go func() {
		if _, err := svc.Submit(ctx); err != nil {
			t.Errorf("submit: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submit blocked on worker availability")
	}
}

func TestJobService_StatusUnknownID(t *testing.T) {
	svc := service.NewJobService(store.NewMemoryStore(), &fakeQueue{})

	_, err := svc.Status(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
