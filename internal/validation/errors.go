// Package validation parses and validates the user-supplied list of (company, role) pairs.
package validation

import (
	"errors"
	"fmt"
)

// InvalidPairsMessage is the user-facing notice for any pairs-input failure.
const InvalidPairsMessage = "Please enter a valid JSON array of {company, role} objects."

// MalformedJSONError means the input is not a JSON document
type MalformedJSONError struct {
	Cause error
}

func (e *MalformedJSONError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: malformed JSON: %v", e.Cause)
	}
	return "validation error: malformed JSON"
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}

// NotAnArrayError means the input parsed but is not a JSON array
type NotAnArrayError struct {
	Got string // JSON kind of the parsed value
}

func (e *NotAnArrayError) Error() string {
	return fmt.Sprintf("validation error: expected a JSON array, got %s", e.Got)
}

// MissingFieldError means an element lacks a non-empty string company or role
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("validation error in [%d].%s: must be a non-empty string", e.Index, e.Field)
}

// EmptyListError means the array has no elements
type EmptyListError struct{}

func (e *EmptyListError) Error() string {
	return "validation error: at least one {company, role} pair is required"
}

// IsValidationError reports whether err is any pairs-input validation failure.
func IsValidationError(err error) bool {
	var (
		malformed *MalformedJSONError
		notArray  *NotAnArrayError
		missing   *MissingFieldError
		empty     *EmptyListError
	)
	return errors.As(err, &malformed) ||
		errors.As(err, &notArray) ||
		errors.As(err, &missing) ||
		errors.As(err, &empty)
}
