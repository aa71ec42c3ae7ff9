package enso

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrDone is returned by TokenStream.Next once every page has been
	// retrieved. Further pulls keep returning ErrDone.
	ErrDone = errors.New("enso: no more pages")

	// ErrMissingAPIKey indicates configuration without an API key.
	ErrMissingAPIKey = errors.New("enso: missing API key")
)

// TransportError indicates a connectivity-level failure: the request
// never completed or the response body could not be read.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("enso: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError indicates the server answered with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("enso: %s returned status %d", e.Endpoint, e.StatusCode)
}

// DecodeError indicates a response payload that does not match the
// expected wire shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("enso: decoding response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MethodNotFoundError indicates the contract ABI doesn't have the
// requested method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("enso: method %q not found in contract %s", e.Method, e.Contract.Hex())
}
