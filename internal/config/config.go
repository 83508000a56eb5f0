package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr      string
	RedisAddr     string
	QueueKey      string
	PostgresDSN   string
	StoreBackend  string
	Workers       int
	QueueCapacity int
	JobDuration   time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		QueueKey:      envOr("REDIS_QUEUE_KEY", "jobs:queue"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		StoreBackend:  envOr("STORE_BACKEND", "postgres"),
		Workers:       envIntOr("WORKERS", 4),
		QueueCapacity: envIntOr("QUEUE_CAPACITY", 1024),
		JobDuration:   envDurationOr("JOB_DURATION", 2*time.Second),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envDurationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
