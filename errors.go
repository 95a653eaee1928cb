package restx

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNotImplemented = errors.New("post is not implemented")

// TransportError is a transport-level failure reported after the request finished.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError is an operation that stayed unfinished past the manager timeout.
type TimeoutError struct {
	URL string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out", e.URL)
}

// DecodeError is a response that arrived but could not be decoded into
// the requested type. Body carries the raw response for diagnosis.
type DecodeError struct {
	Endpoint string
	Body     []byte
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v, body: %s", e.Endpoint, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
