// cmd/server/main.go
//
// Single-process deployment: in-memory store and queue, worker pool and
// HTTP API all in one binary. Jobs do not survive a restart.
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

	"async-job-service/internal/config"
	"async-job-service/internal/queue"
	"async-job-service/internal/service"
	"async-job-service/internal/store"
	httptransport "async-job-service/internal/transport/http"
	"async-job-service/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	jobStore := store.NewMemoryStore()
	jobQueue := queue.NewMemoryQueue(cfg.QueueCapacity)

	executor := worker.SleepExecutor{Delay: cfg.JobDuration}
	pool := worker.NewPool(jobQueue, jobStore, executor, cfg.Workers)

	poolDone := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(poolDone)
	}()

	svc := service.NewJobService(jobStore, jobQueue)
	handler := httptransport.NewHandler(svc)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httptransport.Routes(handler),
	}

	go func() {
		log.Printf("http server started: addr=%s workers=%d queue_capacity=%d job_duration=%s",
			cfg.HTTPAddr, cfg.Workers, cfg.QueueCapacity, cfg.JobDuration)
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

	<-poolDone
	log.Println("server stopped")
}
