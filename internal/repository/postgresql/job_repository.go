package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"async-job-service/internal/entity"
	"async-job-service/internal/store"
)

// Schema:
//
//	CREATE TABLE jobs (
//	    id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    state      text NOT NULL DEFAULT 'pending',
//	    created_at timestamptz NOT NULL DEFAULT now(),
//	    updated_at timestamptz NOT NULL DEFAULT now()
//	);
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context) (*entity.Job, error) {
	const q = `
INSERT INTO jobs (state)
VALUES ('pending')
RETURNING id, state, created_at, updated_at;
`
	var j entity.Job
	var state string
	if err := r.pool.QueryRow(ctx, q).Scan(&j.ID, &state, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.State = entity.JobState(state)
	return &j, nil
}

func (r *JobRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	const q = `
SELECT id, state, created_at, updated_at
FROM jobs
WHERE id = $1;
`
	var j entity.Job
	var state string
	if err := r.pool.QueryRow(ctx, q, id).Scan(&j.ID, &state, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	j.State = entity.JobState(state)
	return &j, nil
}

func (r *JobRepository) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, entity.StateComplete)
}

func (r *JobRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.transition(ctx, id, entity.StateFailed)
}

// transition is a compare-and-set on state: only a pending row moves.
// Zero rows affected means either an unknown id or an already-terminal
// record; the latter is a no-op per the idempotence contract.
func (r *JobRepository) transition(ctx context.Context, id uuid.UUID, to entity.JobState) error {
	const q = `
UPDATE jobs
SET state = $2, updated_at = now()
WHERE id = $1 AND state = 'pending';
`
	tag, err := r.pool.Exec(ctx, q, id, string(to))
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return nil
}
