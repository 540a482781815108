package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means there is no usable identity; the caller should go to login.
	ErrUnauthenticated    = errors.New("not authenticated")
	// ErrMutationPending rejects a second mutation of a kind while one is in flight.
	ErrMutationPending    = errors.New("a change of this kind is already being saved")
	ErrNotFound           = errors.New("record not found")
	// ErrInvalidCredentials is a rejected login. It says nothing about the
	// identity currently held.
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

// RequestError is a failed round trip to the record store.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error

	// Transport is set when no response was received.
	Transport bool
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Retryable reports whether repeating the same request by hand may succeed.
// Transport failures and server errors are; rejected input and undecodable
// responses are not.
func (e *RequestError) Retryable() bool {
	return e.Transport || e.Status >= http.StatusInternalServerError
}

// IsRetryable reports whether err is a RequestError worth offering a retry for.
func IsRetryable(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Retryable()
}
