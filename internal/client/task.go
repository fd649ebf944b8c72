package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Task is one in-flight submission running on its own goroutine.
type Task struct {
	id     uuid.UUID
	cancel context.CancelFunc
	done   chan struct{}

	// written once before done is closed
	resp *types.MatchResponse
	err  error
}

// Start sends req asynchronously. The task ID doubles as the X-Request-ID.
func (c *Client) Start(ctx context.Context, req *request.UploadRequest, f flow.Strategy) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		id:     uuid.New(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer cancel()
		t.resp, t.err = c.submit(ctx, req, f, t.id)
	}()

	return t
}

// ID returns the task's request ID.
func (t *Task) ID() uuid.UUID {
	return t.id
}

// Done is closed once the task has settled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel aborts the exchange. A cancelled task settles with a network error.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the task settles and returns its outcome.
func (t *Task) Wait() (*types.MatchResponse, error) {
	<-t.done
	return t.resp, t.err
}
