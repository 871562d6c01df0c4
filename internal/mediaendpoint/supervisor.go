// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package mediaendpoint supervises the sessions a control point holds open
// against a media endpoint. Every session query runs in the background
// under its own cancellation scope; only the result of the most recent
// query of a session is ever published on the watchable thread.
package mediaendpoint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/openhome/ohtopology/core/logger"
	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/internal/task"
)

const defaultDrainWarning = 5 * time.Second

// Config holds the dependencies of a Supervisor.
type Config struct {
	Client EndpointClient
	Clock  clock.Clock
	Logger logger.Logger

	// Metrics is optional.
	Metrics Metrics

	// DrainWarning is how long Dispose waits for outstanding endpoint
	// calls before logging that it is still waiting. Zero means five
	// seconds.
	DrainWarning time.Duration
}

// Validate returns an error if the config cannot create a Supervisor.
func (config Config) Validate() error {
	if config.Client == nil {
		return errors.NotValidf("nil Client")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.DrainWarning < 0 {
		return errors.NotValidf("negative DrainWarning")
	}
	return nil
}

// Supervisor owns the sessions opened against one endpoint.
type Supervisor struct {
	config  Config
	metrics Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*Session
	creates  sync.WaitGroup
	destroys sync.WaitGroup
	closed   bool
	disposed bool
}

// NewSupervisor returns a Supervisor for the configured endpoint client.
func NewSupervisor(config Config) (*Supervisor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.DrainWarning == 0 {
		config.DrainWarning = defaultDrainWarning
	}
	metrics := config.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		config:   config,
		metrics:  metrics,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}, nil
}

// CreateSession opens a session on the endpoint. It must be called on the
// watchable thread. The task fails with media.ErrCancelled if the
// supervisor is closed, the task is killed or the endpoint fails.
func (s *Supervisor) CreateSession() *task.Task[*Session] {
	s.config.Client.Assert()

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		panic("session created on disposed media endpoint supervisor")
	}
	s.creates.Add(1)
	s.mu.Unlock()

	return task.Start(s.ctx, func(ctx context.Context) (*Session, error) {
		defer s.creates.Done()
		return s.create(ctx)
	})
}

func (s *Supervisor) create(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, media.Cancelled(err)
	}
	id, err := s.config.Client.Create(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.metrics.EndpointFailed(OperationCreate)
			s.config.Logger.Debugf("creating session: %v", err)
		}
		return nil, media.Cancelled(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		// The endpoint holds a session nobody will own.
		s.destroyLocked(id)
		return nil, media.Cancelled(err)
	}
	if _, ok := s.sessions[id]; ok {
		return nil, media.Cancelled(errors.AlreadyExistsf("session %q", id))
	}
	session := newSession(s, id)
	s.sessions[id] = session
	s.metrics.SessionCreated()
	s.config.Logger.Debugf("session %q created", id)
	return session, nil
}

// Session returns the open session with the given id.
func (s *Supervisor) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.NotFoundf("session %q", id)
	}
	return session, nil
}

// SessionIDs returns the ids of the open sessions, sorted.
func (s *Supervisor) SessionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := set.NewStrings()
	for id := range s.sessions {
		ids.Add(id)
	}
	return ids.SortedValues()
}

// Refresh re-issues the current query of every session. It must be called
// on the watchable thread.
func (s *Supervisor) Refresh() {
	s.config.Client.Assert()
	for _, id := range s.SessionIDs() {
		session, err := s.Session(id)
		if err != nil {
			continue
		}
		session.Refresh()
	}
}

// RefreshSession re-issues the current query of one session. It must be
// called on the watchable thread.
func (s *Supervisor) RefreshSession(id string) error {
	s.config.Client.Assert()
	session, err := s.Session(id)
	if err != nil {
		return errors.Trace(err)
	}
	session.Refresh()
	return nil
}

// Close stops the supervisor from making further endpoint calls. Calls in
// flight are cancelled. Sessions stay registered until they are disposed.
func (s *Supervisor) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Dispose waits for outstanding endpoint calls and releases the
// supervisor. It must follow Close and the disposal of every session.
func (s *Supervisor) Dispose() {
	s.mu.Lock()
	if !s.closed {
		s.mu.Unlock()
		panic("media endpoint supervisor disposed before Close")
	}
	if s.disposed {
		s.mu.Unlock()
		panic("media endpoint supervisor disposed twice")
	}
	s.disposed = true
	s.mu.Unlock()

	s.drain(OperationCreate, &s.creates)

	s.mu.Lock()
	remaining := len(s.sessions)
	s.mu.Unlock()
	if remaining > 0 {
		panic(fmt.Sprintf("media endpoint supervisor disposed with %d sessions", remaining))
	}

	s.drain(OperationDestroy, &s.destroys)
}

// Report returns details about the supervisor, in the manner of a worker
// report.
func (s *Supervisor) Report() map[string]any {
	ids := s.SessionIDs()

	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]any{
		"sessions": ids,
		"closed":   s.closed,
		"disposed": s.disposed,
	}
}

// destroySession removes the session from the registry, then asks the
// endpoint to destroy it in the background.
func (s *Supervisor) destroySession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		panic(fmt.Sprintf("session %q is not registered", id))
	}
	delete(s.sessions, id)
	s.metrics.SessionDestroyed()
	s.destroyLocked(id)
}

func (s *Supervisor) destroyLocked(id string) {
	if s.ctx.Err() != nil {
		s.config.Logger.Debugf("not destroying session %q on closed endpoint", id)
		return
	}
	s.destroys.Add(1)
	go func() {
		defer s.destroys.Done()
		if err := s.config.Client.Destroy(s.ctx, id); err != nil && s.ctx.Err() == nil {
			s.metrics.EndpointFailed(OperationDestroy)
			s.config.Logger.Debugf("destroying session %q: %v", id, err)
		}
	}()
}

func (s *Supervisor) drain(operation string, wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-done:
			return
		case <-s.config.Clock.After(s.config.DrainWarning):
			s.config.Logger.Warningf("still waiting for outstanding %s calls", operation)
		}
	}
}
