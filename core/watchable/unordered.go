// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package watchable

import (
	"fmt"
	"slices"
	"sync"
)

// UnorderedWatcher receives the changes of an Unordered collection. All
// methods are called on the collection's thread.
type UnorderedWatcher[T any] interface {
	// UnorderedOpen is called first, when the watcher is added.
	UnorderedOpen()

	// UnorderedInitialised is called once every existing item has been
	// reported through UnorderedAdd.
	UnorderedInitialised()

	UnorderedAdd(item T)
	UnorderedRemove(item T)

	// UnorderedClose is called when the watcher is removed.
	UnorderedClose()
}

// Unordered is a watchable collection without ordering guarantees.
type Unordered[T comparable] struct {
	thread Thread

	mu    sync.RWMutex
	items []T

	watchers []UnorderedWatcher[T]
	disposed bool
}

// NewUnordered returns an empty collection bound to the thread.
func NewUnordered[T comparable](thread Thread) *Unordered[T] {
	return &Unordered[T]{
		thread: thread,
	}
}

// Values returns a copy of the committed items.
func (u *Unordered[T]) Values() []T {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.items)
}

// Len returns the number of committed items.
func (u *Unordered[T]) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.items)
}

// Add appends the item and notifies every watcher.
func (u *Unordered[T]) Add(item T) {
	u.thread.Assert()
	u.assertNotDisposed()

	u.mu.Lock()
	u.items = append(u.items, item)
	u.mu.Unlock()

	for _, w := range slices.Clone(u.watchers) {
		w.UnorderedAdd(item)
	}
}

// Remove deletes the item, if present, and notifies every watcher.
func (u *Unordered[T]) Remove(item T) {
	u.thread.Assert()
	u.assertNotDisposed()

	u.mu.Lock()
	i := slices.Index(u.items, item)
	if i < 0 {
		u.mu.Unlock()
		return
	}
	u.items = slices.Delete(u.items, i, i+1)
	u.mu.Unlock()

	for _, w := range slices.Clone(u.watchers) {
		w.UnorderedRemove(item)
	}
}

// AddWatcher registers the watcher and replays the current contents to it.
func (u *Unordered[T]) AddWatcher(w UnorderedWatcher[T]) {
	u.thread.Assert()
	u.assertNotDisposed()

	u.watchers = append(u.watchers, w)

	w.UnorderedOpen()
	for _, item := range u.Values() {
		w.UnorderedAdd(item)
	}
	w.UnorderedInitialised()
}

// RemoveWatcher unregisters the watcher and closes it.
func (u *Unordered[T]) RemoveWatcher(w UnorderedWatcher[T]) {
	u.thread.Assert()

	i := slices.IndexFunc(u.watchers, func(e UnorderedWatcher[T]) bool { return e == w })
	if i < 0 {
		return
	}
	u.watchers = slices.Delete(u.watchers, i, i+1)
	w.UnorderedClose()
}

// Dispose releases the collection. All watchers must have been removed.
func (u *Unordered[T]) Dispose() {
	u.thread.Assert()
	u.assertNotDisposed()

	if n := len(u.watchers); n > 0 {
		panic(fmt.Sprintf("unordered watchable disposed with %d watchers", n))
	}
	u.disposed = true
}

func (u *Unordered[T]) assertNotDisposed() {
	if u.disposed {
		panic("unordered watchable used after dispose")
	}
}
