package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"async-job-service/internal/entity"
)

// MemoryStore keeps job records in a map. Reads take the read lock so
// concurrent polls across different ids do not serialize on writers.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*entity.Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID]*entity.Job)}
}

func (s *MemoryStore) Create(ctx context.Context) (*entity.Job, error) {
	now := time.Now().UTC()
	j := &entity.Job{
		ID:        uuid.New(),
		State:     entity.StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	cp := *j
	return &cp, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	s.mu.RLock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	cp := *j
	s.mu.RUnlock()
	return &cp, nil
}

func (s *MemoryStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	return s.transition(id, entity.StateComplete)
}

func (s *MemoryStore) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return s.transition(id, entity.StateFailed)
}

func (s *MemoryStore) transition(id uuid.UUID, to entity.JobState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	// terminal states never revert; a retried signal is a no-op
	if j.State.Terminal() {
		return nil
	}
	j.State = to
	j.UpdatedAt = time.Now().UTC()
	return nil
}
