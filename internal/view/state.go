// Package view owns the session state of one upload form and the state
// machine that drives it.
package view

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// Phase is the controller's position in the submit cycle
type Phase string

// Phases of the submit cycle
const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseDisplaying Phase = "displaying"
	PhaseFailed     Phase = "failed"
)

// State is the session's UI state. Only the Controller mutates it.
type State struct {
	File       *types.FileHandle
	PairsText  string
	Loading    bool
	Phase      Phase
	Response   *types.MatchResponse
	Projection *types.Projection
	Err        error  // validation or transport failure, alerted
	AppError   string // service-reported failure, displayed with results
	RequestID  string
}

// Action is an input to Reduce.
type Action interface {
	isAction()
}

// SelectFile replaces the selected file.
type SelectFile struct{ File *types.FileHandle }

// EditPairs replaces the raw pairs text.
type EditPairs struct{ Text string }

// BeginSubmit enters validation, clearing any previous result.
type BeginSubmit struct{}

// ValidationFailed ends validation with an error.
type ValidationFailed struct{ Err error }

// SubmitStarted marks the request as in flight.
type SubmitStarted struct{ RequestID string }

// SubmitSucceeded settles the request with data to display.
type SubmitSucceeded struct {
	Response   *types.MatchResponse
	Projection *types.Projection
}

// ApplicationFailed settles the request with a service-reported error.
type ApplicationFailed struct{ Message string }

// SubmitFailed settles the request with a transport error.
type SubmitFailed struct{ Err error }

// Dismiss acknowledges a failure.
type Dismiss struct{}

func (SelectFile) isAction()        {}
func (EditPairs) isAction()         {}
func (BeginSubmit) isAction()       {}
func (ValidationFailed) isAction()  {}
func (SubmitStarted) isAction()     {}
func (SubmitSucceeded) isAction()   {}
func (ApplicationFailed) isAction() {}
func (SubmitFailed) isAction()      {}
func (Dismiss) isAction()           {}

// Reduce returns the state after applying a. It has no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SelectFile:
		s.File = a.File
		return clearUnlessSubmitting(s)
	case EditPairs:
		s.PairsText = a.Text
		return clearUnlessSubmitting(s)
	case BeginSubmit:
		if s.Phase == PhaseSubmitting {
			return s
		}
		s = clearResult(s)
		s.Phase = PhaseValidating
		return s
	case ValidationFailed:
		s.Phase = PhaseFailed
		s.Err = a.Err
		return s
	case SubmitStarted:
		s.Phase = PhaseSubmitting
		s.Loading = true
		s.RequestID = a.RequestID
		return s
	case SubmitSucceeded:
		s.Phase = PhaseDisplaying
		s.Loading = false
		s.Response = a.Response
		s.Projection = a.Projection
		return s
	case ApplicationFailed:
		s.Phase = PhaseDisplaying
		s.Loading = false
		s.AppError = a.Message
		return s
	case SubmitFailed:
		s.Phase = PhaseFailed
		s.Loading = false
		s.Err = a.Err
		return s
	case Dismiss:
		if s.Phase == PhaseFailed {
			s.Phase = PhaseIdle
			s.Err = nil
		}
		return s
	default:
		return s
	}
}

// clearUnlessSubmitting drops a shown result or error after an edit. Edits
// during a submission only change the inputs.
func clearUnlessSubmitting(s State) State {
	if s.Phase == PhaseSubmitting {
		return s
	}
	s = clearResult(s)
	s.Phase = PhaseIdle
	return s
}

func clearResult(s State) State {
	s.Response = nil
	s.Projection = nil
	s.Err = nil
	s.AppError = ""
	s.RequestID = ""
	return s
}
