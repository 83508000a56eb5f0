package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"async-job-service/internal/entity"
	"async-job-service/internal/queue"
	"async-job-service/internal/store"
	"async-job-service/internal/worker"
)

func waitForState(t *testing.T, s store.Store, id uuid.UUID, want entity.JobState, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		j, err := s.Get(context.Background(), id)
		if err == nil && j.State == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	j, _ := s.Get(context.Background(), id)
	t.Fatalf("job %s never reached %s (last seen: %+v)", id, want, j)
}

func startPool(t *testing.T, q queue.Queue, s store.Store, e worker.Executor, workers int) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p := worker.NewPool(q, s, e, workers)
	go func() {
		p.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestPool_JobsReachComplete(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := queue.NewMemoryQueue(16)

	startPool(t, q, s, worker.SleepExecutor{Delay: 10 * time.Millisecond}, 3)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		j, err := s.Create(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := q.Enqueue(ctx, j.ID); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		ids = append(ids, j.ID)
	}

	for _, id := range ids {
		waitForState(t, s, id, entity.StateComplete, 2*time.Second)
	}
}

func TestPool_FailureIsIsolatedPerItem(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := queue.NewMemoryQueue(16)

	bad, _ := s.Create(ctx)
	panicking, _ := s.Create(ctx)
	good, _ := s.Create(ctx)

	exec := worker.ExecutorFunc(func(ctx context.Context, id uuid.UUID) error {
		switch id {
		case bad.ID:
			return errors.New("boom")
		case panicking.ID:
			panic("much worse boom")
		default:
			return nil
		}
	})

	// single worker: the good job sits behind both failures
	startPool(t, q, s, exec, 1)

	for _, id := range []uuid.UUID{bad.ID, panicking.ID, good.ID} {
		if err := q.Enqueue(ctx, id); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	waitForState(t, s, bad.ID, entity.StateFailed, 2*time.Second)
	waitForState(t, s, panicking.ID, entity.StateFailed, 2*time.Second)
	waitForState(t, s, good.ID, entity.StateComplete, 2*time.Second)
}

func TestPool_SingleWorkerCompletesInFIFOOrder(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := queue.NewMemoryQueue(16)

	// simulated durations 3/1/2 units; completions must still land in
	// submission order because one worker drains the queue head first
	unit := 30 * time.Millisecond
	durations := map[uuid.UUID]time.Duration{}

	var ids []uuid.UUID
	for _, mult := range []time.Duration{3, 1, 2} {
		j, _ := s.Create(ctx)
		durations[j.ID] = mult * unit
		ids = append(ids, j.ID)
	}

	var mu sync.Mutex
	var order []uuid.UUID
	exec := worker.ExecutorFunc(func(ctx context.Context, id uuid.UUID) error {
		time.Sleep(durations[id])
		mu.Lock()
		order = append(order, id)
		mu.Unlock()
		return nil
	})

	startPool(t, q, s, exec, 1)

	for _, id := range ids {
		if err := q.Enqueue(ctx, id); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	for _, id := range ids {
		waitForState(t, s, id, entity.StateComplete, 2*time.Second)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, id := range ids {
		if order[i] != id {
			t.Fatalf("completion order %v, want submission order %v", order, ids)
		}
	}
}

func TestPool_StateNeverRevertsAfterComplete(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	q := queue.NewMemoryQueue(4)

	startPool(t, q, s, worker.SleepExecutor{}, 2)

	j, _ := s.Create(ctx)
	if err := q.Enqueue(ctx, j.ID); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	waitForState(t, s, j.ID, entity.StateComplete, 2*time.Second)

	for i := 0; i < 10; i++ {
		got, err := s.Get(ctx, j.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.State != entity.StateComplete {
			t.Fatalf("state reverted to %s", got.State)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
