// Package flow describes the scoring service's upload flows behind one abstraction,
// so validation, request building, submission and rendering are shared.
package flow

import (
	"encoding/json"
	"fmt"

	embedded "github.com/jonathan/resume-matcher/schemas"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Kind says whether a flow yields one result or a list of results
type Kind string

const (
	// KindSingle scores a résumé against one service-chosen job description
	KindSingle Kind = "single"
	// KindMulti scores a résumé against each requested (company, role) pair
	KindMulti Kind = "multi"
)

// Strategy captures everything that differs between flows.
type Strategy interface {
	Kind() Kind
	// Path is the endpoint path appended to the service base URL.
	Path() string
	// Accepts lists the lower-cased file extensions the flow uploads.
	Accepts() []string
	// NeedsPairs reports whether the companies_roles field is sent.
	NeedsPairs() bool
	// Decode turns a 2xx body into a MatchResponse.
	Decode(body []byte) (*types.MatchResponse, error)
}

// ApplicationError is a failure reported by the service inside a 2xx body.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("service error: %s", e.Message)
}

type multi struct{}

// Multi is the multi-company flow: POST /upload-resume-multi/
var Multi Strategy = multi{}

func (multi) Kind() Kind        { return KindMulti }
func (multi) Path() string      { return "/upload-resume-multi/" }
func (multi) Accepts() []string { return []string{".pdf", ".txt"} }
func (multi) NeedsPairs() bool  { return true }

func (multi) Decode(body []byte) (*types.MatchResponse, error) {
	if err := schemas.ValidateBytes(embedded.MatchResponse, body); err != nil {
		return nil, err
	}

	var resp types.MatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}
	return &resp, nil
}

type single struct{}

// Single is the single-match flow: POST /upload-resume/
var Single Strategy = single{}

func (single) Kind() Kind   { return KindSingle }
func (single) Path() string { return "/upload-resume/" }
func (single) Accepts() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}
func (single) NeedsPairs() bool { return false }

func (single) Decode(body []byte) (*types.MatchResponse, error) {
	if err := schemas.ValidateBytes(embedded.SingleMatchResponse, body); err != nil {
		return nil, err
	}

	var resp types.SingleMatchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode single match response: %w", err)
	}
	if resp.Error != "" {
		return nil, &ApplicationError{Message: resp.Error}
	}
	return resp.ToMatchResponse(), nil
}

// ByKind returns the strategy for a flow kind.
func ByKind(kind Kind) (Strategy, error) {
	switch kind {
	case KindMulti, "":
		return Multi, nil
	case KindSingle:
		return Single, nil
	default:
		return nil, fmt.Errorf("unknown flow %q (expected %q or %q)", kind, KindMulti, KindSingle)
	}
}
