// Package request assembles the multipart upload sent to the scoring service.
package request

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFileSelected is returned when a submission has no résumé file.
var ErrNoFileSelected = errors.New("no résumé file selected")

// UnsupportedFileError means the file extension is not accepted by the flow
type UnsupportedFileError struct {
	Name     string
	Accepted []string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file %q: expected one of %s", e.Name, strings.Join(e.Accepted, ", "))
}

// BuildError represents a failure assembling the request
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("build error: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
