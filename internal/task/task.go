// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package task provides a cancellable unit of background work that produces
// a typed result. It is the shape every asynchronous operation of the media
// engine returns: creating a session, reading a page of a snapshot.
package task

import (
	"context"

	"gopkg.in/tomb.v2"
)

// Task is background work producing a T.
type Task[T any] struct {
	tomb   tomb.Tomb
	result T
}

// Start runs fn on its own goroutine. The context handed to fn is done when
// ctx is done or when the task is killed.
func Start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{}
	taskCtx := t.tomb.Context(ctx)
	t.tomb.Go(func() error {
		result, err := fn(taskCtx)
		if err != nil {
			return err
		}
		t.result = result
		return nil
	})
	return t
}

// Kill asks the task to stop by cancelling its context. It does not wait.
func (t *Task[T]) Kill() {
	t.tomb.Kill(nil)
}

// Done returns a channel that is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.tomb.Dead()
}

// Wait blocks until the task has finished and returns its result.
func (t *Task[T]) Wait() (T, error) {
	if err := t.tomb.Wait(); err != nil {
		var zero T
		return zero, err
	}
	return t.result, nil
}
