package upload

import (
	"errors"
	"fmt"
)

// ErrNoFiles indicates a submission was attempted with no files selected.
var ErrNoFiles = errors.New("no files selected")

// ErrClientNameRequired indicates the client name was empty after trimming.
var ErrClientNameRequired = errors.New("client name is required")

// ServerError is a non-2xx response from the backend. Message is the backend's
// own error text when the body could be decoded, otherwise the HTTP status text.
type ServerError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("conversion failed: %s", e.Message)
}

// TransportError is a request that never produced a response at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
