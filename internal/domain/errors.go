package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateIdentity = errors.New("pull request already tracked")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrInvalidURL        = errors.New("invalid pull request url")
	ErrMalformed         = errors.New("malformed response")
	ErrNotFound          = errors.New("pull request not found")
	ErrRateLimited       = errors.New("rate limited")
	ErrTransient         = errors.New("transient failure")
	ErrUnauthorized      = errors.New("unauthorized")
)

// FetchError is returned by the external state client. Kind is one of the
// sentinels above so callers can use errors.Is.
type FetchError struct {
	Err        error
	Kind       error
	RetryAfter time.Duration // only meaningful for ErrRateLimited
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewFetchError wraps err with a classification
func NewFetchError(kind, err error) *FetchError {
	return &FetchError{Err: err, Kind: kind}
}

// RetryAfter extracts the rate limit hint from err, if any
func RetryAfter(err error) (time.Duration, bool) {
	var fe *FetchError
	if errors.As(err, &fe) && errors.Is(fe.Kind, ErrRateLimited) {
		return fe.RetryAfter, true
	}
	return 0, false
}
