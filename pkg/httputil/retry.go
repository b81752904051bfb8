// Package httputil provides retry support for the layout service client.
//
// Saving a floor plan is an idempotent upsert and loading is a plain GET, so
// both round-trips can be retried safely. Only errors marked transient (via
// [Transient]) are retried; everything else fails fast.
package httputil

import (
	"context"
	"errors"
	"time"
)

// Policy controls retry behavior: up to Attempts tries with Delay between
// them, doubling after each failure.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultPolicy retries transient failures twice after the initial attempt.
var DefaultPolicy = Policy{Attempts: 3, Delay: 500 * time.Millisecond}

// transientError marks an error as retryable.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient wraps an error so [Retry] will attempt the operation again.
// Network failures and 5xx responses qualify; client errors do not.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	return errors.As(err, new(*transientError))
}

// Retry executes fn under the policy. Non-transient errors return
// immediately; transient ones are retried until the attempts are exhausted
// or the context is canceled. The returned error is unwrapped of its
// transient marker.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay

	var lastErr error
	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		lastErr = err

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}

	var te *transientError
	if errors.As(lastErr, &te) {
		return te.err
	}
	return lastErr
}
