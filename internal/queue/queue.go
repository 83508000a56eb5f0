package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnavailable signals an infrastructure-level enqueue failure. The
// submission API maps it to a 503.
var ErrUnavailable = errors.New("queue unavailable")

// Queue carries work items (job ids, nothing else) from the submission
// path to the workers. FIFO is the only ordering guarantee; every item
// is consumed exactly once by exactly one consumer.
type Queue interface {
	// Enqueue appends an id to the tail. It does not wait for a worker:
	// the queue absorbs backlog.
	Enqueue(ctx context.Context, id uuid.UUID) error

	// Dequeue blocks until an item is available or ctx is done.
	Dequeue(ctx context.Context) (uuid.UUID, error)
}
