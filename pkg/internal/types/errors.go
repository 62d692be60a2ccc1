package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors of the deletion flow. CredentialMissing is a control-flow
// signal prompting the password challenge, not a hard failure.
var (
	ErrCredentialMissing = errors.New("credential required")
	ErrCredentialInvalid = errors.New("credential invalid")
	ErrObjectNotFound    = errors.New("object not found")
)

// RateLimitedError rejects an upload because the client exhausted its window.
// Retryable once the window resets.
type RateLimitedError struct {
	ResetAt   time.Time
	Remaining int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, window resets at %s", e.ResetAt.Format(time.RFC3339))
}

// RetryAfter returns the wait until the window resets, floored at zero.
func (e *RateLimitedError) RetryAfter(now time.Time) time.Duration {
	if d := e.ResetAt.Sub(now); d > 0 {
		return d
	}

	return 0
}

// InvalidFileError rejects an upload the client must fix: wrong type or too
// large. Not retryable as-is.
type InvalidFileError struct {
	Reason string
}

func (e *InvalidFileError) Error() string {
	return "invalid file: " + e.Reason
}

// StorageFailureError wraps a blob or record store failure. Transient,
// surfaced to the caller, never auto-retried here.
type StorageFailureError struct {
	Op  string
	Err error
}

func (e *StorageFailureError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageFailureError) Unwrap() error {
	return e.Err
}
