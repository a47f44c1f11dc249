package common

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// RetryOnce runs fn and, if it fails while ctx is still live, runs it one more time.
// Errors marked with NoRetry are returned immediately.
func RetryOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || errors.Is(err, errNoRetry) || ctx.Err() != nil {
		return err
	}
	return fn(ctx)
}

var errNoRetry = errors.New("not retryable")

type noRetryError struct{ err error }

func (e noRetryError) Error() string { return e.err.Error() }
func (e noRetryError) Unwrap() []error { return []error{e.err, errNoRetry} }

// NoRetry marks err so RetryOnce does not repeat the call.
func NoRetry(err error) error {
	if err == nil {
		return nil
	}
	return noRetryError{err: err}
}
