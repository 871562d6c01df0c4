// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mediaendpoint

import (
	"context"
	"time"

	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/internal/snapshot"
	"github.com/openhome/ohtopology/internal/task"
)

// ReadyFunc receives the snapshot of a query once it is installed. It is
// called on the watchable thread.
type ReadyFunc func(media.Snapshot[*media.Datum])

// Session is one session held open against an endpoint. Apart from ID,
// its methods must be called on the watchable thread.
type Session struct {
	supervisor *Supervisor
	client     EndpointClient
	id         string

	query      media.Query
	onReady    ReadyFunc
	generation uint64
	cancel     context.CancelFunc
	fetch      *task.Task[media.ClientSnapshot]
	current    *snapshot.Snapshot[*media.Datum]
	disposed   bool
}

func newSession(supervisor *Supervisor, id string) *Session {
	return &Session{
		supervisor: supervisor,
		client:     supervisor.config.Client,
		id:         id,
	}
}

// ID returns the id the endpoint issued for the session.
func (s *Session) ID() string {
	return s.id
}

// Browse queries the children of the datum, or the root when datum is nil.
func (s *Session) Browse(datum *media.Datum, onReady ReadyFunc) {
	s.issue(media.BrowseQuery(datum), onReady)
}

// List queries the distinct values of the tag.
func (s *Session) List(tag *media.Tag, onReady ReadyFunc) {
	s.issue(media.ListQuery(tag), onReady)
}

// Link queries the items whose tag has the value.
func (s *Session) Link(tag *media.Tag, value string, onReady ReadyFunc) {
	s.issue(media.LinkQuery(tag, value), onReady)
}

// Search queries the items matching the text.
func (s *Session) Search(value string, onReady ReadyFunc) {
	s.issue(media.SearchQuery(value), onReady)
}

// Refresh re-issues the current query. It does nothing if no query has
// been issued.
func (s *Session) Refresh() {
	s.client.Assert()
	s.assertNotDisposed()
	if s.query.Kind == media.QueryNone {
		return
	}
	s.issue(s.query, s.onReady)
}

// Query returns the current query.
func (s *Session) Query() media.Query {
	s.client.Assert()
	s.assertNotDisposed()
	return s.query
}

// Generation returns the generation of the most recent query.
func (s *Session) Generation() uint64 {
	s.client.Assert()
	s.assertNotDisposed()
	return s.generation
}

// Snapshot returns the installed snapshot, or nil if none has been
// installed yet.
func (s *Session) Snapshot() media.Snapshot[*media.Datum] {
	s.client.Assert()
	s.assertNotDisposed()
	if s.current == nil {
		return nil
	}
	return s.current
}

// Dispose cancels the query in flight, releases the installed snapshot and
// destroys the session on the endpoint.
func (s *Session) Dispose() {
	s.client.Assert()
	s.assertNotDisposed()
	s.disposed = true

	s.supersede()
	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}
	s.supervisor.destroySession(s.id)
}

func (s *Session) issue(query media.Query, onReady ReadyFunc) {
	s.client.Assert()
	s.assertNotDisposed()

	s.supersede()

	s.generation++
	generation := s.generation
	s.query = query
	s.onReady = onReady

	scope, cancel := context.WithCancel(s.supervisor.ctx)
	s.cancel = cancel

	started := s.supervisor.config.Clock.Now()
	s.supervisor.metrics.QueryStarted(query.Kind)

	s.fetch = task.Start(scope, func(ctx context.Context) (media.ClientSnapshot, error) {
		result, err := s.run(ctx, query)
		if err != nil {
			return nil, err
		}
		s.client.Schedule(func() {
			s.install(scope, generation, query.Kind, result, started)
		})
		return result, nil
	})
}

// supersede cancels the current scope and waits for the fetch in flight.
func (s *Session) supersede() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.fetch == nil {
		return
	}
	select {
	case <-s.fetch.Done():
	default:
		s.supervisor.metrics.QuerySuperseded(s.query.Kind)
	}
	_, _ = s.fetch.Wait()
	s.fetch = nil
}

func (s *Session) run(ctx context.Context, query media.Query) (media.ClientSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, media.Cancelled(err)
	}

	var (
		result media.ClientSnapshot
		err    error
	)
	switch query.Kind {
	case media.QueryBrowse:
		result, err = s.client.Browse(ctx, s.id, query.Datum)
	case media.QueryList:
		result, err = s.client.List(ctx, s.id, query.Tag)
	case media.QueryLink:
		result, err = s.client.Link(ctx, s.id, query.Tag, query.Value)
	case media.QuerySearch:
		result, err = s.client.Search(ctx, s.id, query.Value)
	default:
		panic("unexpected query kind " + query.Kind.String())
	}
	if err != nil {
		if ctx.Err() == nil {
			s.supervisor.metrics.EndpointFailed(OperationQuery)
			s.supervisor.config.Logger.Debugf("session %q %s: %v", s.id, query, err)
		}
		return nil, media.Cancelled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, media.Cancelled(err)
	}
	return result, nil
}

// install publishes the result of a query, unless a later query has been
// issued since or the scope has been cancelled.
func (s *Session) install(
	scope context.Context,
	generation uint64,
	kind media.QueryKind,
	result media.ClientSnapshot,
	started time.Time,
) {
	if s.disposed || generation != s.generation || scope.Err() != nil {
		s.supervisor.metrics.QueryStale(kind)
		if logger := s.supervisor.config.Logger; logger.IsTraceEnabled() {
			logger.Tracef("session %q discarding stale result of generation %d", s.id, generation)
		}
		return
	}

	previous := s.current
	s.current = snapshot.New(s.client, scope, generation, result, s.reader(result))
	s.supervisor.metrics.QueryInstalled(kind, s.supervisor.config.Clock.Now().Sub(started))

	if s.onReady != nil {
		s.onReady(s.current)
	}
	if previous != nil {
		previous.Dispose()
	}
}

func (s *Session) reader(result media.ClientSnapshot) snapshot.ReadFunc[*media.Datum] {
	return func(ctx context.Context, index, count uint32) ([]*media.Datum, error) {
		data, err := s.client.Read(ctx, s.id, result, index, count)
		if err != nil {
			if ctx.Err() == nil {
				s.supervisor.metrics.EndpointFailed(OperationRead)
				s.supervisor.config.Logger.Debugf("session %q read %d at %d: %v", s.id, count, index, err)
			}
			return nil, err
		}
		s.supervisor.metrics.PageRead(len(data))
		return data, nil
	}
}

func (s *Session) assertNotDisposed() {
	if s.disposed {
		panic("session " + s.id + " used after dispose")
	}
}
