package queue

import (
	"context"

	"github.com/google/uuid"
)

const defaultCapacity = 1024

// MemoryQueue is a bounded in-process FIFO over a buffered channel. The
// channel gives consume-once semantics under any number of concurrent
// producers and consumers.
type MemoryQueue struct {
	items chan uuid.UUID
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryQueue{items: make(chan uuid.UUID, capacity)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.items <- id:
		return nil
	default:
		// buffer full: fail fast instead of blocking the submitter
		return ErrUnavailable
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	select {
	case id := <-q.items:
		return id, nil
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// Len reports the current backlog.
func (q *MemoryQueue) Len() int {
	return len(q.items)
}
