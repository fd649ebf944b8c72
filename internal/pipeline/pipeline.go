// Package pipeline runs the validate → build → submit → project sequence shared
// by every upload flow.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/client"
	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/projection"
	"github.com/jonathan/resume-matcher/internal/request"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/validation"
)

// Step names reported through ProgressEvent
const (
	StepValidate = "validate"
	StepBuild    = "build"
	StepSubmit   = "submit"
	StepProject  = "project"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. RunBatch calls it
// from several goroutines.
type ProgressCallback func(event ProgressEvent)

// Starter starts an asynchronous submission. *client.Client implements it.
type Starter interface {
	Start(ctx context.Context, req *request.UploadRequest, f flow.Strategy) *client.Task
}

// Pipeline is one flow bound to a service client.
type Pipeline struct {
	Flow       flow.Strategy
	Client     Starter
	Projection projection.Options
	OnProgress ProgressCallback
}

// Outcome is the result of a successful run
type Outcome struct {
	RequestID  uuid.UUID
	Response   *types.MatchResponse
	Projection *types.Projection
}

// New returns a pipeline for the given flow.
func New(f flow.Strategy, c Starter, opts projection.Options) *Pipeline {
	return &Pipeline{Flow: f, Client: c, Projection: opts}
}

func (p *Pipeline) emit(step, message, requestID string, content any) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Step: step, Message: message, RequestID: requestID, Content: content})
	}
}

// Prepare validates the inputs and builds the request without any I/O.
// A missing file is reported before malformed pairs.
func (p *Pipeline) Prepare(file *types.FileHandle, pairsText string) (*request.UploadRequest, error) {
	if file == nil {
		return nil, request.ErrNoFileSelected
	}

	var pairs []types.CompanyRoleEntry
	if p.Flow.NeedsPairs() {
		var err error
		pairs, err = validation.Validate(pairsText)
		if err != nil {
			return nil, err
		}
		p.emit(StepValidate, fmt.Sprintf("Validated %d company/role pairs", len(pairs)), "", pairs)
	}

	req, err := request.Build(file, pairs, request.OptionsFor(p.Flow))
	if err != nil {
		return nil, err
	}
	p.emit(StepBuild, fmt.Sprintf("Built upload for %s (%d bytes)", file.Name, file.Size()), "", nil)
	return req, nil
}

// Start submits a prepared request asynchronously.
func (p *Pipeline) Start(ctx context.Context, req *request.UploadRequest) *client.Task {
	task := p.Client.Start(ctx, req, p.Flow)
	p.emit(StepSubmit, fmt.Sprintf("Submitting to %s", p.Flow.Path()), task.ID().String(), nil)
	return task
}

// Finish projects a settled response. With strict scores an unparseable score
// is reported as a malformed response.
func (p *Pipeline) Finish(resp *types.MatchResponse) (*types.Projection, error) {
	proj, err := projection.Project(resp, p.Projection)
	if err != nil {
		var scoreErr *projection.ScoreError
		if errors.As(err, &scoreErr) {
			return nil, &client.TransportError{
				Kind:    client.KindMalformed,
				URL:     p.Flow.Path(),
				Message: "unparseable match score",
				Cause:   err,
			}
		}
		return nil, err
	}
	p.emit(StepProject, fmt.Sprintf("Projected %d matches", len(proj.Records)), "", nil)
	return proj, nil
}

// Run prepares, submits and projects in one blocking call.
func (p *Pipeline) Run(ctx context.Context, file *types.FileHandle, pairsText string) (*Outcome, error) {
	req, err := p.Prepare(file, pairsText)
	if err != nil {
		return nil, err
	}

	task := p.Start(ctx, req)
	resp, err := task.Wait()
	if err != nil {
		return nil, err
	}

	proj, err := p.Finish(resp)
	if err != nil {
		return nil, err
	}
	return &Outcome{RequestID: task.ID(), Response: resp, Projection: proj}, nil
}
