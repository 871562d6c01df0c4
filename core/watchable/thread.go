// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package watchable

// Thread is the execution context on which all observable state is mutated.
// Every watchable value is bound to exactly one Thread, and every change to a
// watchable value, and every notification delivered to its watchers, happens
// on that Thread. This gives watchers a total order over state changes.
type Thread interface {
	// Assert panics if the caller is not running on the thread.
	Assert()

	// Schedule enqueues the action to run on the thread later. It never
	// blocks the caller.
	Schedule(action func())

	// Execute runs the action on the thread and blocks until it has run.
	// A panic raised by the action is re-raised in the caller.
	Execute(action func())

	// Drain blocks until the thread has no pending work, including work
	// that was scheduled while draining.
	Drain()
}
