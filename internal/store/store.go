package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"async-job-service/internal/entity"
)

var ErrNotFound = errors.New("not found")

// Store owns job record state. Workers and the submission path request
// mutations through it; they never hold a record across suspension points.
type Store interface {
	// Create inserts a new pending record and returns it. The record is
	// visible to Get before Create returns.
	Create(ctx context.Context) (*entity.Job, error)

	// Get returns the current record or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*entity.Job, error)

	// MarkComplete transitions pending -> complete. Calling it again, or on
	// a record that already reached a terminal state, is a no-op.
	MarkComplete(ctx context.Context, id uuid.UUID) error

	// MarkFailed transitions pending -> failed with the same idempotence
	// rules as MarkComplete.
	MarkFailed(ctx context.Context, id uuid.UUID) error
}
