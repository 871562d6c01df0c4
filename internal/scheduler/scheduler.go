// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package scheduler serialises structural changes, such as devices joining
// and leaving the network, onto a watchable thread. Changes arrive from
// arbitrary goroutines; they are applied one at a time, in arrival order,
// and never overlap with each other.
package scheduler

import (
	"sync"

	"github.com/juju/errors"
	"github.com/juju/worker/v4/catacomb"

	"github.com/openhome/ohtopology/core/logger"
	"github.com/openhome/ohtopology/core/watchable"
)

// ErrSchedulerClosed is returned when scheduling on a scheduler that is
// stopping or stopped.
const ErrSchedulerClosed = errors.ConstError("scheduler closed")

// Config holds the dependencies of a Scheduler.
type Config struct {
	Thread watchable.Thread
	Logger logger.Logger
}

// Validate returns an error if the config cannot start a Scheduler.
func (config Config) Validate() error {
	if config.Thread == nil {
		return errors.NotValidf("nil Thread")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	return nil
}

// Scheduler is a worker applying structural changes in order.
type Scheduler struct {
	catacomb catacomb.Catacomb
	config   Config

	mu     sync.Mutex
	idle   *sync.Cond
	queue  []func()
	busy   bool
	closed bool
	signal chan struct{}
}

// New starts a Scheduler.
func New(config Config) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	s := &Scheduler{
		config: config,
		signal: make(chan struct{}, 1),
	}
	s.idle = sync.NewCond(&s.mu)

	if err := catacomb.Invoke(catacomb.Plan{
		Site: &s.catacomb,
		Work: s.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

// Kill is part of the worker.Worker interface. Changes already scheduled
// are still applied before the worker stops.
func (s *Scheduler) Kill() {
	s.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (s *Scheduler) Wait() error {
	return s.catacomb.Wait()
}

// Schedule appends the action to the chain. The action runs on the thread
// once every previously scheduled action has completed.
func (s *Scheduler) Schedule(action func()) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	s.queue = append(s.queue, action)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
	return nil
}

// WaitIdle blocks until every scheduled action has been applied.
func (s *Scheduler) WaitIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.busy || len(s.queue) > 0 {
		s.idle.Wait()
	}
}

func (s *Scheduler) loop() error {
	for {
		select {
		case <-s.catacomb.Dying():
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()

			s.runPending()
			return s.catacomb.ErrDying()
		case <-s.signal:
			s.runPending()
		}
	}
}

func (s *Scheduler) runPending() {
	for {
		action, ok := s.next()
		if !ok {
			return
		}
		s.apply(action)
	}
}

// next pops the head of the chain and marks the scheduler busy, or marks
// it idle when the chain is empty.
func (s *Scheduler) next() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		s.busy = false
		s.idle.Broadcast()
		return nil, false
	}
	action := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	s.busy = true
	return action, true
}

// apply runs the action on the thread and blocks until it has completed.
func (s *Scheduler) apply(action func()) {
	done := make(chan struct{})
	s.config.Thread.Schedule(func() {
		defer close(done)
		action()
	})
	<-done

	if s.config.Logger.IsTraceEnabled() {
		s.config.Logger.Tracef("structural change applied")
	}
}
