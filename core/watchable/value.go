// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package watchable

import (
	"fmt"
	"slices"
	"sync"
)

// Watcher receives the changes of a Value. All methods are called on the
// value's thread.
type Watcher[T any] interface {
	// ItemOpen is called when the watcher is added, with the current value.
	ItemOpen(id string, value T)

	// ItemUpdate is called every time the value changes.
	ItemUpdate(id string, value, previous T)

	// ItemClose is called when the watcher is removed.
	ItemClose(id string, value T)
}

// Value is a single-writer, multi-reader cell with change notification.
// Writers and watchers must be on the thread the value is bound to; readers
// may call Value from any goroutine and only ever see committed values.
type Value[T any] struct {
	thread Thread
	id     string

	mu    sync.RWMutex
	value T

	watchers []Watcher[T]
	disposed bool
}

// NewValue returns a Value bound to the thread with the given initial value.
func NewValue[T any](thread Thread, id string, value T) *Value[T] {
	return &Value[T]{
		thread: thread,
		id:     id,
		value:  value,
	}
}

// ID returns the identifier passed to watchers.
func (v *Value[T]) ID() string {
	return v.id
}

// Value returns the committed value.
func (v *Value[T]) Value() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Update commits a new value and notifies every watcher.
func (v *Value[T]) Update(value T) {
	v.thread.Assert()
	v.assertNotDisposed()

	v.mu.Lock()
	previous := v.value
	v.value = value
	v.mu.Unlock()

	for _, w := range slices.Clone(v.watchers) {
		w.ItemUpdate(v.id, value, previous)
	}
}

// AddWatcher registers the watcher and opens it with the current value.
func (v *Value[T]) AddWatcher(w Watcher[T]) {
	v.thread.Assert()
	v.assertNotDisposed()

	v.watchers = append(v.watchers, w)
	w.ItemOpen(v.id, v.Value())
}

// RemoveWatcher unregisters the watcher and closes it.
func (v *Value[T]) RemoveWatcher(w Watcher[T]) {
	v.thread.Assert()

	i := slices.IndexFunc(v.watchers, func(e Watcher[T]) bool { return e == w })
	if i < 0 {
		return
	}
	v.watchers = slices.Delete(v.watchers, i, i+1)
	w.ItemClose(v.id, v.Value())
}

// Dispose releases the value. All watchers must have been removed.
func (v *Value[T]) Dispose() {
	v.thread.Assert()
	v.assertNotDisposed()

	if n := len(v.watchers); n > 0 {
		panic(fmt.Sprintf("watchable %q disposed with %d watchers", v.id, n))
	}
	v.disposed = true
}

func (v *Value[T]) assertNotDisposed() {
	if v.disposed {
		panic(fmt.Sprintf("watchable %q used after dispose", v.id))
	}
}
