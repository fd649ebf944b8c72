// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// CompanyRoleEntry designates one job target to score a résumé against.
type CompanyRoleEntry struct {
	Company string `json:"company" validate:"required"`
	Role    string `json:"role" validate:"required"`
}

// Validate validates the CompanyRoleEntry using the validator.
func (e *CompanyRoleEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}

// Label returns the display label "<company> - <role>".
// Delimiters inside names are not escaped.
func (e CompanyRoleEntry) Label() string {
	return e.Company + " - " + e.Role
}

// MatchResult is the service's score for one requested pair
type MatchResult struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	MatchScore     string `json:"match_score"` // formatted as "<float>%", or "N/A"
	JobDescription string `json:"job_description"`
	Timestamp      string `json:"timestamp,omitempty"`
}

// Label returns the display label "<company> - <role>".
func (m MatchResult) Label() string {
	return CompanyRoleEntry{Company: m.Company, Role: m.Role}.Label()
}

// MatchResponse is the multi-match response body
type MatchResponse struct {
	ResumeText string        `json:"resume_text"`
	Matches    []MatchResult `json:"matches"`
}

// SingleMatchResponse is the single-match response body.
// Error is set instead of the other fields when the service could not score the résumé.
type SingleMatchResponse struct {
	ResumeText     string `json:"resume_text,omitempty"`
	MatchScore     string `json:"match_score,omitempty"`
	JobDescription string `json:"job_description,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ToMatchResponse normalizes a single-match body into a MatchResponse with one
// unlabeled match.
func (s *SingleMatchResponse) ToMatchResponse() *MatchResponse {
	return &MatchResponse{
		ResumeText: s.ResumeText,
		Matches: []MatchResult{{
			MatchScore:     s.MatchScore,
			JobDescription: s.JobDescription,
		}},
	}
}

// HistoryEntry is one stored upload as listed by the service
type HistoryEntry struct {
	ID         string        `json:"_id,omitempty"`
	FileName   string        `json:"file_name"`
	ResumeText string        `json:"resume_text"`
	Matches    []MatchResult `json:"matches"`
	UploadedAt string        `json:"uploaded_at,omitempty"` // ISO 8601 as sent by the service
}

// ToMatchResponse returns the stored result in the shape of a fresh upload.
func (h *HistoryEntry) ToMatchResponse() *MatchResponse {
	return &MatchResponse{ResumeText: h.ResumeText, Matches: h.Matches}
}

// HistoryResponse is the resume-history body, newest upload first
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}
