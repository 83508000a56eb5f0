package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobState string

const (
	StatePending  JobState = "pending"
	StateComplete JobState = "complete"
	StateFailed   JobState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s JobState) Terminal() bool {
	return s == StateComplete || s == StateFailed
}

type Job struct {
	ID        uuid.UUID `json:"id"`
	State     JobState  `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
