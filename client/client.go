// Package client implements the polling side of the job API: submit a
// job, then poll its state at a fixed interval until it is terminal.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrNotFound    = errors.New("job not found")
	ErrPollTimeout = errors.New("poll attempts exhausted")
)

type Job struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

const (
	StatePending  = "pending"
	StateComplete = "complete"
	StateFailed   = "failed"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit POSTs a new job and returns it in the pending state.
func (c *Client) Submit(ctx context.Context) (*Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("submit: unexpected status %d", resp.StatusCode)
	}

	var j Job
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		return nil, err
	}
	return &j, nil
}

// Status fetches the current state of a job.
func (c *Client) Status(ctx context.Context, id string) (*Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+id, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status: unexpected status %d", resp.StatusCode)
	}

	var j Job
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		return nil, err
	}
	return &j, nil
}

// WaitForCompletion polls at the given interval until the job reaches a
// terminal state or maxAttempts polls have been spent. maxAttempts <= 0
// means poll until ctx is done. Bounding attempts keeps a stuck job
// from holding the client forever.
func (c *Client) WaitForCompletion(ctx context.Context, id string, interval time.Duration, maxAttempts int) (*Job, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 0; ; attempt++ {
		if maxAttempts > 0 && attempt >= maxAttempts {
			return nil, ErrPollTimeout
		}

		j, err := c.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		if j.State == StateComplete || j.State == StateFailed {
			return j, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
