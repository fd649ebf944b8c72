package view

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jonathan/resume-matcher/internal/client"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
)

// User-facing notices
const (
	NoFileMessage       = "Please select a resume file first."
	UploadFailedMessage = "Upload failed. Check the log for details."
)

// DefaultPairsText pre-populates the pairs input.
const DefaultPairsText = `[{"company": "Amazon", "role": "Software Engineer"}, {"company": "LinkedIn", "role": "Backend Developer"}]`

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Alert(message string)
}

// Renderer redraws the view from a state snapshot.
type Renderer interface {
	Render(s State)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Alert calls f(message).
func (f NotifierFunc) Alert(message string) { f(message) }

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s State)

// Render calls f(s).
func (f RendererFunc) Render(s State) { f(s) }

// Controller drives one upload form. It is safe for concurrent use; at most
// one submission is in flight at a time.
type Controller struct {
	pipeline *pipeline.Pipeline
	notifier Notifier
	renderer Renderer

	mu      sync.Mutex
	state   State
	task    *client.Task
	settled chan struct{}
}

// NewController returns a controller in the Idle phase with the given pairs
// text pre-filled. The pipeline's OnProgress callback runs while the
// controller holds its lock and must not call back into it.
func NewController(p *pipeline.Pipeline, n Notifier, r Renderer, pairsText string) *Controller {
	if n == nil {
		n = NotifierFunc(func(string) {})
	}
	if r == nil {
		r = RendererFunc(func(State) {})
	}
	return &Controller{
		pipeline: p,
		notifier: n,
		renderer: r,
		state:    State{Phase: PhaseIdle, PairsText: pairsText},
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// dispatch applies an action and returns the new snapshot.
func (c *Controller) dispatch(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, a)
	return c.state
}

// SelectFile replaces the selected file.
func (c *Controller) SelectFile(file *types.FileHandle) {
	c.renderer.Render(c.dispatch(SelectFile{File: file}))
}

// EditPairs replaces the pairs text.
func (c *Controller) EditPairs(text string) {
	c.renderer.Render(c.dispatch(EditPairs{Text: text}))
}

// Dismiss acknowledges a failure and returns to Idle.
func (c *Controller) Dismiss() {
	c.renderer.Render(c.dispatch(Dismiss{}))
}

// Submit validates the inputs and, if they are valid, starts one request.
// It returns false without doing anything while a request is pending.
// Validation failures are alerted synchronously and send nothing.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.Phase == PhaseSubmitting {
		c.mu.Unlock()
		return false
	}
	c.state = Reduce(c.state, BeginSubmit{})
	file, pairsText := c.state.File, c.state.PairsText

	req, err := c.pipeline.Prepare(file, pairsText)
	if err != nil {
		c.state = Reduce(c.state, ValidationFailed{Err: err})
		snapshot := c.state
		c.mu.Unlock()

		c.notifier.Alert(validationMessage(err))
		c.renderer.Render(snapshot)
		return true
	}

	task := c.pipeline.Start(ctx, req)
	done := make(chan struct{})
	c.task = task
	c.settled = done
	c.state = Reduce(c.state, SubmitStarted{RequestID: task.ID().String()})
	snapshot := c.state
	c.mu.Unlock()

	c.renderer.Render(snapshot)
	go c.settle(task, done)
	return true
}

// settle waits for the task and applies its outcome.
func (c *Controller) settle(task *client.Task, done chan struct{}) {
	defer close(done)

	resp, err := task.Wait()
	var proj *types.Projection
	if err == nil {
		proj, err = c.pipeline.Finish(resp)
	}

	var action Action
	var appErr *flow.ApplicationError
	switch {
	case err == nil:
		action = SubmitSucceeded{Response: resp, Projection: proj}
	case errors.As(err, &appErr):
		action = ApplicationFailed{Message: appErr.Message}
	default:
		log.Printf("Upload %s failed: %v", task.ID(), err)
		action = SubmitFailed{Err: err}
	}

	snapshot := c.dispatch(action)
	if _, failed := action.(SubmitFailed); failed {
		c.notifier.Alert(UploadFailedMessage)
	}
	c.renderer.Render(snapshot)
}

// Wait blocks until the pending submission, if any, has settled.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.settled
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Cancel aborts the pending submission. It settles as a failed upload.
func (c *Controller) Cancel() {
	c.mu.Lock()
	task := c.task
	submitting := c.state.Phase == PhaseSubmitting
	c.mu.Unlock()
	if task != nil && submitting {
		task.Cancel()
	}
}

// validationMessage maps an input error to the notice shown to the user.
func validationMessage(err error) string {
	var unsupported *request.UnsupportedFileError
	switch {
	case errors.Is(err, request.ErrNoFileSelected):
		return NoFileMessage
	case validation.IsValidationError(err):
		return validation.InvalidPairsMessage
	case errors.As(err, &unsupported):
		return unsupported.Error()
	default:
		return err.Error()
	}
}
