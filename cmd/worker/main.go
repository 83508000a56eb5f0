// cmd/worker/main.go
//
// Worker-only process for the split deployment: drains the redis queue
// and updates job records in the shared store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"async-job-service/internal/config"
	"async-job-service/internal/queue"
	"async-job-service/internal/repository/postgresql"
	"async-job-service/internal/repository/redisstore"
	"async-job-service/internal/store"
	"async-job-service/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	var jobStore store.Store
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := postgresql.NewPool(ctx, mustEnv("POSTGRES_DSN"))
		if err != nil {
			log.Fatalf("pg: %v", err)
		}
		defer pool.Close()
		jobStore = postgresql.NewJobRepository(pool)
	case "redis":
		jobStore = redisstore.NewJobStore(rdb)
	default:
		log.Fatalf("unknown STORE_BACKEND: %s", cfg.StoreBackend)
	}

	jobQueue := queue.NewRedisQueue(rdb, cfg.QueueKey)
	executor := worker.SleepExecutor{Delay: cfg.JobDuration}

	log.Printf("worker started: workers=%d store=%s redis_addr=%s queue_key=%s job_duration=%s",
		cfg.Workers, cfg.StoreBackend, cfg.RedisAddr, cfg.QueueKey, cfg.JobDuration)

	workerPool := worker.NewPool(jobQueue, jobStore, executor, cfg.Workers)
	workerPool.Run(ctx)

	log.Println("worker stopped")
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
