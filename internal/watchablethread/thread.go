// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package watchablethread implements the execution context that serialises
// every mutation of observable state. A Thread is a single goroutine
// consuming a FIFO queue of actions; it runs as a worker, so it is stopped
// with Kill and Wait like any other worker.
package watchablethread

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/juju/worker/v4/catacomb"
	"github.com/petermattis/goid"

	"github.com/openhome/ohtopology/core/logger"
)

// ErrThreadStopped is the fault raised when work is handed to a thread
// that has stopped.
const ErrThreadStopped = errors.ConstError("watchable thread stopped")

// Config holds the dependencies of a Thread.
type Config struct {
	// Name identifies the thread in logs and fault messages.
	Name string

	// Logger is used to report faults raised by scheduled actions.
	Logger logger.Logger
}

// Validate returns an error if the config cannot start a Thread.
func (config Config) Validate() error {
	if config.Name == "" {
		return errors.NotValidf("empty Name")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	return nil
}

// Thread is the single goroutine on which watchable state is mutated.
type Thread struct {
	catacomb catacomb.Catacomb
	config   Config

	mu      sync.Mutex
	queue   []func()
	closed  bool
	signal  chan struct{}
	stopped chan struct{}

	// owner is the id of the goroutine running the loop.
	owner atomic.Int64

	faultsMu sync.Mutex
	faults   []error
}

// New starts a Thread.
func New(config Config) (*Thread, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	t := &Thread{
		config:  config,
		signal:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &t.catacomb,
		Work: t.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return t, nil
}

// Kill is part of the worker.Worker interface. Work already queued still
// runs; new work is refused.
func (t *Thread) Kill() {
	t.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface. It returns an error
// describing every fault raised by a scheduled action.
func (t *Thread) Wait() error {
	return t.catacomb.Wait()
}

// Assert panics unless called from an action running on the thread. Any
// other goroutine fails, whether or not the thread is busy.
func (t *Thread) Assert() {
	if !t.onThread() {
		panic(fmt.Sprintf("not running on watchable thread %q", t.config.Name))
	}
}

// Schedule enqueues the action. Scheduling on a stopped thread panics with
// ErrThreadStopped.
func (t *Thread) Schedule(action func()) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		panic(errors.Annotatef(ErrThreadStopped, "scheduling on %q", t.config.Name))
	}
	t.queue = append(t.queue, action)
	t.mu.Unlock()

	select {
	case t.signal <- struct{}{}:
	default:
	}
}

// Execute runs the action on the thread and waits for it. A panic raised by
// the action is re-raised here. Execute must not be called from the thread
// itself; doing so panics instead of deadlocking.
func (t *Thread) Execute(action func()) {
	if t.onThread() {
		panic(fmt.Sprintf("Execute called on watchable thread %q", t.config.Name))
	}

	done := make(chan any, 1)
	t.Schedule(func() {
		completed := false
		defer func() {
			if completed {
				done <- nil
				return
			}
			done <- recover()
		}()
		action()
		completed = true
	})

	select {
	case r := <-done:
		if r != nil {
			panic(r)
		}
	case <-t.stopped:
		// The queue is drained before the thread stops, so the action may
		// still have run; prefer its outcome.
		select {
		case r := <-done:
			if r != nil {
				panic(r)
			}
		default:
			panic(errors.Annotatef(ErrThreadStopped, "executing on %q", t.config.Name))
		}
	}
}

// Drain blocks until the queue is empty, including work queued while
// draining.
func (t *Thread) Drain() {
	for {
		var empty bool
		t.Execute(func() {
			empty = t.pending() == 0
		})
		if empty {
			return
		}
	}
}

func (t *Thread) loop() error {
	defer close(t.stopped)

	t.owner.Store(goid.Get())

	for {
		select {
		case <-t.catacomb.Dying():
			t.mu.Lock()
			t.closed = true
			t.mu.Unlock()

			t.runPending()
			return t.exitError()
		case <-t.signal:
			t.runPending()
		}
	}
}

func (t *Thread) runPending() {
	for {
		action, ok := t.pop()
		if !ok {
			return
		}
		t.run(action)
	}
}

func (t *Thread) run(action func()) {
	defer func() {
		if r := recover(); r != nil {
			t.fault(r)
		}
	}()
	action()
}

func (t *Thread) pop() (func(), bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 {
		return nil, false
	}
	action := t.queue[0]
	t.queue[0] = nil
	t.queue = t.queue[1:]
	return action, true
}

func (t *Thread) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

func (t *Thread) onThread() bool {
	return goid.Get() == t.owner.Load()
}

func (t *Thread) fault(r any) {
	var err error
	if e, ok := r.(error); ok {
		err = e
	} else {
		err = errors.Errorf("%v", r)
	}
	t.config.Logger.Errorf("fault on watchable thread %q: %v", t.config.Name, err)

	t.faultsMu.Lock()
	t.faults = append(t.faults, err)
	t.faultsMu.Unlock()
}

func (t *Thread) exitError() error {
	t.faultsMu.Lock()
	defer t.faultsMu.Unlock()

	if len(t.faults) == 0 {
		return t.catacomb.ErrDying()
	}
	messages := make([]string, len(t.faults))
	for i, err := range t.faults {
		messages[i] = err.Error()
	}
	return errors.Errorf("%d fault(s) on watchable thread %q: %s",
		len(t.faults), t.config.Name, strings.Join(messages, "; "))
}
