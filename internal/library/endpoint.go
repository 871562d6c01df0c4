// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package library

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/openhome/ohtopology/core/logger"
	"github.com/openhome/ohtopology/core/media"
)

// ErrEndpointClosed is returned by an endpoint that has been closed.
const ErrEndpointClosed = errors.ConstError("media endpoint closed")

// Results is the result set handed out by the endpoint.
type Results struct {
	items []*media.Datum
	alpha []uint32
}

func newResults(items []*media.Datum, alpha []uint32) *Results {
	return &Results{items: items, alpha: alpha}
}

// Total is part of media.ClientSnapshot.
func (r *Results) Total() uint32 {
	return uint32(len(r.items))
}

// Alpha is part of media.ClientSnapshot.
func (r *Results) Alpha() []uint32 {
	return slices.Clone(r.alpha)
}

// Endpoint serves a catalog to any number of sessions.
type Endpoint struct {
	catalog *Catalog
	logger  logger.Logger

	mu       sync.Mutex
	sessions set.Strings
	closed   bool
}

// NewEndpoint returns an endpoint serving the catalog.
func NewEndpoint(catalog *Catalog, logger logger.Logger) *Endpoint {
	return &Endpoint{
		catalog:  catalog,
		logger:   logger,
		sessions: set.NewStrings(),
	}
}

// Create starts a session.
func (e *Endpoint) Create(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Trace(err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrEndpointClosed
	}
	id := uuid.NewString()
	e.sessions.Add(id)
	e.logger.Debugf("session %s created", id)
	return id, nil
}

// Destroy ends a session.
func (e *Endpoint) Destroy(ctx context.Context, session string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sessions.Contains(session) {
		return errors.NotFoundf("session %q", session)
	}
	e.sessions.Remove(session)
	e.logger.Debugf("session %s destroyed", session)
	return nil
}

// Sessions returns the ids of the live sessions.
func (e *Endpoint) Sessions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions.SortedValues()
}

// Close ends every session. Further calls fail with ErrEndpointClosed.
func (e *Endpoint) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n := len(e.sessions); n > 0 {
		e.logger.Debugf("closing with %d sessions", n)
	}
	e.sessions = set.NewStrings()
	e.closed = true
}

// Browse is part of mediaendpoint.Endpoint.
func (e *Endpoint) Browse(ctx context.Context, session string, datum *media.Datum) (media.ClientSnapshot, error) {
	if err := e.check(ctx, session); err != nil {
		return nil, errors.Trace(err)
	}
	return e.snapshot(e.catalog.Browse(datum))
}

// List is part of mediaendpoint.Endpoint.
func (e *Endpoint) List(ctx context.Context, session string, tag *media.Tag) (media.ClientSnapshot, error) {
	if err := e.check(ctx, session); err != nil {
		return nil, errors.Trace(err)
	}
	return e.snapshot(e.catalog.List(tag))
}

// Link is part of mediaendpoint.Endpoint.
func (e *Endpoint) Link(ctx context.Context, session string, tag *media.Tag, value string) (media.ClientSnapshot, error) {
	if err := e.check(ctx, session); err != nil {
		return nil, errors.Trace(err)
	}
	return e.snapshot(e.catalog.Link(tag, value))
}

// Search is part of mediaendpoint.Endpoint.
func (e *Endpoint) Search(ctx context.Context, session string, value string) (media.ClientSnapshot, error) {
	if err := e.check(ctx, session); err != nil {
		return nil, errors.Trace(err)
	}
	return e.snapshot(e.catalog.Search(value))
}

// Read is part of mediaendpoint.Endpoint.
func (e *Endpoint) Read(ctx context.Context, session string, snapshot media.ClientSnapshot, index, count uint32) ([]*media.Datum, error) {
	if err := e.check(ctx, session); err != nil {
		return nil, errors.Trace(err)
	}
	results, ok := snapshot.(*Results)
	if !ok {
		return nil, errors.NotValidf("snapshot of type %T", snapshot)
	}
	total := results.Total()
	if index > total || count > total-index {
		return nil, errors.NotValidf("read of %d items at %d from %d", count, index, total)
	}
	return slices.Clone(results.items[index : index+count]), nil
}

func (e *Endpoint) check(ctx context.Context, session string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEndpointClosed
	}
	if !e.sessions.Contains(session) {
		return errors.NotFoundf("session %q", session)
	}
	return nil
}

func (e *Endpoint) snapshot(results *Results, err error) (media.ClientSnapshot, error) {
	if err != nil {
		return nil, errors.Trace(err)
	}
	return results, nil
}
