package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Executor is the pluggable computation a worker runs for a dequeued job.
// The pool knows nothing about what the work actually is.
type Executor interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, id uuid.UUID) error

func (f ExecutorFunc) Execute(ctx context.Context, id uuid.UUID) error {
	return f(ctx, id)
}

// SleepExecutor stands in for a lengthy computation. There is no
// cancellation mid-sleep; once dequeued, an item runs to the end.
type SleepExecutor struct {
	Delay time.Duration
}

func (e SleepExecutor) Execute(ctx context.Context, id uuid.UUID) error {
	time.Sleep(e.Delay)
	return nil
}
