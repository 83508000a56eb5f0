package worker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"async-job-service/internal/queue"
	"async-job-service/internal/store"
)

type Pool struct {
	queue    queue.Queue
	store    store.Store
	executor Executor
	workers  int
}

func NewPool(q queue.Queue, s store.Store, executor Executor, workers int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{
		queue:    q,
		store:    s,
		executor: executor,
		workers:  workers,
	}
}

// Run starts the workers and blocks until ctx is done and all of them
// have returned. Each worker blocks on the queue independently.
func (p *Pool) Run(ctx context.Context) {
	log.Printf("worker pool started: workers=%d", p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p.loop(ctx, n)
		}(i + 1)
	}
	wg.Wait()

	log.Println("worker pool stopped")
}

func (p *Pool) loop(ctx context.Context, n int) {
	for {
		id, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("[worker-%d] stopped", n)
				return
			}
			log.Printf("[worker-%d] dequeue error: %v", n, err)
			continue
		}
		p.process(ctx, n, id)
	}
}

func (p *Pool) process(ctx context.Context, n int, id uuid.UUID) {
	start := time.Now()
	log.Printf("[worker-%d] job_id=%s state=executing", n, id)

	if err := p.execute(ctx, id); err != nil {
		// contained: mark the record and keep draining the queue
		if mErr := p.store.MarkFailed(ctx, id); mErr != nil {
			log.Printf("[worker-%d] job_id=%s mark_failed error: %v", n, id, mErr)
		}
		log.Printf("[worker-%d] job_id=%s state=failed duration_ms=%d error=%v",
			n, id, time.Since(start).Milliseconds(), err)
		return
	}

	if err := p.store.MarkComplete(ctx, id); err != nil {
		log.Printf("[worker-%d] job_id=%s mark_complete error: %v", n, id, err)
		return
	}
	log.Printf("[worker-%d] job_id=%s state=complete duration_ms=%d",
		n, id, time.Since(start).Milliseconds())
}

// execute runs the pluggable computation with a recover barrier so a
// panicking execution cannot take the worker loop down with it.
func (p *Pool) execute(ctx context.Context, id uuid.UUID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("execution panic: %v", r)
		}
	}()
	return p.executor.Execute(ctx, id)
}
