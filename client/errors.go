package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for client construction and orchestration.
var (
	// ErrNilTransport indicates no Transport was provided.
	ErrNilTransport = errors.New("client: transport is nil")

	// ErrMissingResource indicates Config.Resource is empty.
	ErrMissingResource = errors.New("client: resource name is required")

	// ErrInvalidConfig indicates an out-of-range configuration value.
	ErrInvalidConfig = errors.New("client: invalid configuration")
)

// TransportError is a classified transport-stage failure. It wraps the
// underlying cause and carries the kind the retry policy keys on.
type TransportError struct {
	// Kind is KindTransient, KindPermanent, or KindCancelled.
	Kind ErrorKind

	// StatusCode is the response status when the failure came from an
	// error-status response; zero for connection-level failures.
	StatusCode int

	// Err is the underlying cause. Nil for status-code failures.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("client: %s transport failure: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("client: %s transport failure: status %d", e.Kind, e.StatusCode)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable transport failure.
func IsTransient(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindTransient
}

// IsPermanent reports whether err is a request-level failure that must not
// be retried.
func IsPermanent(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == KindPermanent
}
