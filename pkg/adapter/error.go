package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// AdapterError carries provider failure metadata so callers can decide
// whether a retry is worthwhile.
type AdapterError struct {
	Provider  string
	Status    int
	Temporary bool
	Err       error
}

func newStatusError(provider string, status int, err error) *AdapterError {
	return &AdapterError{Provider: provider, Status: status, Err: err}
}

func (e *AdapterError) Error() string {
	if e == nil {
		return "adapter error"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s request failed (status %d)", e.Provider, e.Status)
	}
	return fmt.Sprintf("adapter request failed (status %d)", e.Status)
}

func (e *AdapterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// retryable reports whether the provider failure is worth one more attempt:
// rate limiting, a server-side error, or an explicitly temporary condition.
func (e *AdapterError) retryable() bool {
	if e == nil {
		return false
	}
	if e.Temporary {
		return true
	}
	return e.Status == 429 || (e.Status >= 500 && e.Status <= 599)
}

// IsTransient reports whether err describes a failure that may succeed on
// retry. Context cancellation is deliberate and never retried; deadline
// expiry and network timeouts are.
func IsTransient(err error) bool {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return false
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var adapterErr *AdapterError
	return errors.As(err, &adapterErr) && adapterErr.retryable()
}
