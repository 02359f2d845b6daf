package assistant

import (
	"errors"
	"fmt"
)

// ErrNotInitialized reports an operation invoked before Initialize
// completed.
var ErrNotInitialized = errors.New("assistant not initialized")

// UpstreamError wraps a failure from the persistence or alert capability.
// It keeps the failing operation visible while letting callers unwrap the
// cause.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure in %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
