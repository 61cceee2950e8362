package contact

import (
	"errors"
	"fmt"
)

var ErrNoEndpoint = errors.New("contact: endpoint is required")

// ServerError is a non-2xx response from the endpoint.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("contact: server returned %d: %s", e.Status, e.Message)
}

// TransportError wraps a failure to reach the endpoint or to read its reply.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "contact: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
