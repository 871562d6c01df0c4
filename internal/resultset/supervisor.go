// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package resultset publishes the result set of a sessionless remote query,
// such as a playlist or a radio preset list, as a watchable snapshot. Each
// update supersedes the previous snapshot: reads against it are cancelled
// and it is torn down only once its replacement is visible.
package resultset

import (
	"context"

	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/core/watchable"
	"github.com/openhome/ohtopology/internal/snapshot"
)

// ClientSnapshot is a result set as delivered by an endpoint client,
// together with the means to read it.
type ClientSnapshot[T any] interface {
	media.ClientSnapshot

	// Read fetches count items starting at index.
	Read(ctx context.Context, index, count uint32) ([]T, error)
}

// Supervisor owns the watchable snapshot of one result set.
type Supervisor[T any] struct {
	thread watchable.Thread

	ctx    context.Context
	cancel context.CancelFunc

	generation    uint64
	current       *snapshot.Snapshot[T]
	currentCancel context.CancelFunc

	value    *watchable.Value[media.Snapshot[T]]
	disposed bool
}

// New returns a Supervisor publishing the initial result set as generation
// zero.
func New[T any](thread watchable.Thread, id string, initial ClientSnapshot[T]) *Supervisor[T] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Supervisor[T]{
		thread: thread,
		ctx:    ctx,
		cancel: cancel,
	}
	s.current, s.currentCancel = s.newSnapshot(initial)
	s.value = watchable.NewValue[media.Snapshot[T]](thread, id, s.current)
	return s
}

// Snapshot returns the watchable holding the current snapshot.
func (s *Supervisor[T]) Snapshot() *watchable.Value[media.Snapshot[T]] {
	return s.value
}

// Update publishes a new result set. It must be called on the thread.
func (s *Supervisor[T]) Update(result ClientSnapshot[T]) {
	s.thread.Assert()
	s.assertNotDisposed()

	s.currentCancel()

	s.generation++
	previous := s.current
	s.current, s.currentCancel = s.newSnapshot(result)

	s.value.Update(s.current)

	previous.Dispose()
}

// Dispose cancels outstanding reads, waits for them and releases the
// watchable. It must be called on the thread.
func (s *Supervisor[T]) Dispose() {
	s.thread.Assert()
	s.assertNotDisposed()
	s.disposed = true

	s.cancel()
	s.currentCancel()
	s.current.Dispose()
	s.value.Dispose()
}

func (s *Supervisor[T]) newSnapshot(result ClientSnapshot[T]) (*snapshot.Snapshot[T], context.CancelFunc) {
	ctx, cancel := context.WithCancel(s.ctx)

	var read snapshot.ReadFunc[T]
	var descriptor media.ClientSnapshot
	if result != nil {
		read = result.Read
		descriptor = result
	}
	return snapshot.New(s.thread, ctx, s.generation, descriptor, read), cancel
}

func (s *Supervisor[T]) assertNotDisposed() {
	if s.disposed {
		panic("result set supervisor used after dispose")
	}
}
