package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"async-job-service/internal/entity"
	"async-job-service/internal/store"
)

// JobStore keeps each record in a redis hash under job:<id>.
// Updates per id come from a single assigned worker, so a read-then-set
// transition does not race with other writers; readers are unaffected.
type JobStore struct {
	rdb *redis.Client
}

func NewJobStore(rdb *redis.Client) *JobStore {
	return &JobStore{rdb: rdb}
}

func key(id uuid.UUID) string {
	return "job:" + id.String()
}

func (s *JobStore) Create(ctx context.Context) (*entity.Job, error) {
	now := time.Now().UTC()
	j := &entity.Job{
		ID:        uuid.New(),
		State:     entity.StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.rdb.HSet(ctx, key(j.ID), map[string]interface{}{
		"state":      string(j.State),
		"created_at": now.Format(time.RFC3339Nano),
		"updated_at": now.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	vals, err := s.rdb.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, store.ErrNotFound
	}

	j := &entity.Job{
		ID:    id,
		State: entity.JobState(vals["state"]),
	}
	if t, err := time.Parse(time.RFC3339Nano, vals["created_at"]); err == nil {
		j.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, vals["updated_at"]); err == nil {
		j.UpdatedAt = t
	}
	return j, nil
}

func (s *JobStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, entity.StateComplete)
}

func (s *JobStore) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, entity.StateFailed)
}

func (s *JobStore) transition(ctx context.Context, id uuid.UUID, to entity.JobState) error {
	cur, err := s.rdb.HGet(ctx, key(id), "state").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.ErrNotFound
		}
		return err
	}
	if entity.JobState(cur).Terminal() {
		return nil
	}

	return s.rdb.HSet(ctx, key(id), map[string]interface{}{
		"state":      string(to),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}).Err()
}
