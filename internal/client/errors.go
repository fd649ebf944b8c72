// Package client talks to the résumé scoring service over HTTP.
package client

import (
	"errors"
	"fmt"
)

// Kind classifies a transport failure
type Kind string

// Transport failure kinds
const (
	// KindNetwork means no response was received
	KindNetwork Kind = "network_error"
	// KindServer means the service answered with a non-2xx status
	KindServer Kind = "server_error"
	// KindMalformed means a 2xx body was missing required fields or not JSON
	KindMalformed Kind = "malformed_response"
)

// TransportError is any failure of the HTTP exchange itself.
type TransportError struct {
	Kind       Kind
	URL        string
	StatusCode int // set for KindServer
	Message    string
	Cause      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s for %s: %s", e.Kind, e.URL, e.Message)
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a TransportError of the given kind.
func IsKind(err error, kind Kind) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr) && transportErr.Kind == kind
}
