// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// ErrCancelled means a request produced no result, because it was
	// superseded, because its owner was torn down, or because the endpoint
	// failed to serve it.
	ErrCancelled = errors.ConstError("cancelled")

	// ErrShortRead is the cause reported when an endpoint returns a page
	// with fewer or more items than requested.
	ErrShortRead = errors.ConstError("endpoint returned wrong number of items")
)

// Cancelled returns an error that satisfies errors.Is(err, ErrCancelled)
// and unwraps to the cause. A nil cause yields ErrCancelled itself.
func Cancelled(cause error) error {
	if cause == nil || cause == ErrCancelled {
		return ErrCancelled
	}
	if _, ok := cause.(*cancelledError); ok {
		return cause
	}
	return &cancelledError{cause: cause}
}

// IsCancelled reports whether err means "no result".
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

type cancelledError struct {
	cause error
}

func (e *cancelledError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCancelled, e.cause)
}

func (e *cancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *cancelledError) Unwrap() error {
	return e.cause
}
