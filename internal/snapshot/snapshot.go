// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package snapshot provides the bounds-checked, cancellable paged reader
// shared by every supervisor that publishes result sets.
package snapshot

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/core/watchable"
	"github.com/openhome/ohtopology/internal/task"
)

// ReadFunc fetches count items starting at index from the endpoint that
// produced the result set.
type ReadFunc[T any] func(ctx context.Context, index, count uint32) ([]T, error)

// Snapshot implements media.Snapshot. Reads run in the background under the
// snapshot's context; Dispose waits for every read in flight.
type Snapshot[T any] struct {
	thread     watchable.Thread
	ctx        context.Context
	generation uint64
	total      uint32
	alpha      []uint32
	read       ReadFunc[T]

	mu       sync.Mutex
	reads    sync.WaitGroup
	disposed bool
}

// New returns a snapshot of a result set. The context is the cancellation
// scope of the generation that produced it; its owner cancels it when the
// snapshot is superseded.
func New[T any](
	thread watchable.Thread,
	ctx context.Context,
	generation uint64,
	result media.ClientSnapshot,
	read ReadFunc[T],
) *Snapshot[T] {
	s := &Snapshot[T]{
		thread:     thread,
		ctx:        ctx,
		generation: generation,
		read:       read,
	}
	if result != nil {
		s.total = result.Total()
		s.alpha = slices.Clone(result.Alpha())
	}
	return s
}

// Total is part of media.Snapshot.
func (s *Snapshot[T]) Total() uint32 {
	return s.total
}

// Alpha is part of media.Snapshot.
func (s *Snapshot[T]) Alpha() []uint32 {
	return slices.Clone(s.alpha)
}

// Generation is part of media.Snapshot.
func (s *Snapshot[T]) Generation() uint64 {
	return s.generation
}

// Read is part of media.Snapshot.
func (s *Snapshot[T]) Read(index, count uint32) *task.Task[media.Fragment[T]] {
	s.thread.Assert()

	if uint64(index)+uint64(count) > uint64(s.total) {
		panic(fmt.Sprintf("read of %d items at %d out of bounds of snapshot with %d items", count, index, s.total))
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		panic("read from disposed snapshot")
	}
	s.reads.Add(1)
	s.mu.Unlock()

	return task.Start(s.ctx, func(ctx context.Context) (media.Fragment[T], error) {
		defer s.reads.Done()
		return s.fetch(ctx, index, count)
	})
}

func (s *Snapshot[T]) fetch(ctx context.Context, index, count uint32) (media.Fragment[T], error) {
	if err := ctx.Err(); err != nil {
		return media.Fragment[T]{}, media.Cancelled(err)
	}
	if count == 0 {
		return media.Fragment[T]{Index: index}, nil
	}

	data, err := s.read(ctx, index, count)
	if err != nil {
		return media.Fragment[T]{}, media.Cancelled(err)
	}
	if err := ctx.Err(); err != nil {
		return media.Fragment[T]{}, media.Cancelled(err)
	}
	if len(data) != int(count) {
		return media.Fragment[T]{}, media.Cancelled(media.ErrShortRead)
	}
	return media.Fragment[T]{Index: index, Data: data}, nil
}

// Dispose refuses further reads and waits for every read in flight to
// finish. Owners cancel the snapshot's context first so that reads in
// flight finish promptly.
func (s *Snapshot[T]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		panic("snapshot disposed twice")
	}
	s.disposed = true
	s.mu.Unlock()

	s.reads.Wait()
}
