package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue is a FIFO over a single redis list: LPUSH at the head,
// blocking RPOP at the tail. BRPOP hands each element to exactly one
// of the competing workers.
type RedisQueue struct {
	rdb      *redis.Client
	key      string
	popBlock time.Duration
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{
		rdb:      rdb,
		key:      key,
		popBlock: 5 * time.Second,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, id uuid.UUID) error {
	if err := q.rdb.LPush(ctx, q.key, id.String()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	for {
		vals, err := q.rdb.BRPop(ctx, q.popBlock, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timed out with nothing queued, block again
				continue
			}
			if ctx.Err() != nil {
				return uuid.Nil, ctx.Err()
			}
			return uuid.Nil, err
		}

		// BRPOP returns [key, value]
		id, err := uuid.Parse(vals[1])
		if err != nil {
			return uuid.Nil, fmt.Errorf("malformed work item %q: %w", vals[1], err)
		}
		return id, nil
	}
}
