// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package mediaendpoint

import (
	"context"

	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/core/watchable"
)

// Endpoint is the protocol-specific half of a media endpoint client. Every
// method may block on network I/O and must honour the context.
type Endpoint interface {
	// Create opens a session on the endpoint and returns its id.
	Create(ctx context.Context) (string, error)

	// Destroy closes the session.
	Destroy(ctx context.Context, session string) error

	// Browse returns the children of the datum, or the root containers
	// when datum is nil.
	Browse(ctx context.Context, session string, datum *media.Datum) (media.ClientSnapshot, error)

	// List returns the distinct values of the tag.
	List(ctx context.Context, session string, tag *media.Tag) (media.ClientSnapshot, error)

	// Link returns the items whose tag has the value.
	Link(ctx context.Context, session string, tag *media.Tag, value string) (media.ClientSnapshot, error)

	// Search returns the items matching the text.
	Search(ctx context.Context, session string, value string) (media.ClientSnapshot, error)

	// Read returns count items of the result set starting at index.
	Read(ctx context.Context, session string, snapshot media.ClientSnapshot, index, count uint32) ([]*media.Datum, error)
}

// EndpointClient is an Endpoint bound to the watchable thread that owns the
// state built from it.
type EndpointClient interface {
	watchable.Thread
	Endpoint
}

// NewEndpointClient binds the endpoint to the thread.
func NewEndpointClient(thread watchable.Thread, endpoint Endpoint) EndpointClient {
	return struct {
		watchable.Thread
		Endpoint
	}{thread, endpoint}
}
