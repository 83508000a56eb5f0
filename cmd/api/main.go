// cmd/api/main.go
//
// API-only process for the split deployment: job records live in
// postgres (or redis, see STORE_BACKEND), the queue lives in redis,
// workers run in cmd/worker.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"async-job-service/internal/config"
	"async-job-service/internal/queue"
	"async-job-service/internal/repository/postgresql"
	"async-job-service/internal/repository/redisstore"
	"async-job-service/internal/service"
	"async-job-service/internal/store"
	httptransport "async-job-service/internal/transport/http"
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

	svc := service.NewJobService(jobStore, jobQueue)
	handler := httptransport.NewHandler(svc)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httptransport.Routes(handler),
	}

	go func() {
		log.Printf("api started: addr=%s store=%s redis_addr=%s queue_key=%s",
			cfg.HTTPAddr, cfg.StoreBackend, cfg.RedisAddr, cfg.QueueKey)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	log.Println("api stopped")
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
