// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media

import (
	"github.com/openhome/ohtopology/internal/task"
)

// Fragment is one materialised page of a snapshot.
type Fragment[T any] struct {
	// Index is the position of the first item within the snapshot.
	Index uint32

	// Data holds exactly the number of items requested.
	Data []T
}

// Snapshot is an immutable view of a result set. Pages are fetched on
// demand with Read.
type Snapshot[T any] interface {
	// Total is the number of items in the result set.
	Total() uint32

	// Alpha is the secondary index of the result set, for example the
	// first position of each initial letter. It is nil when the query does
	// not support one.
	Alpha() []uint32

	// Generation identifies the query that produced the snapshot. Later
	// queries of the same owner have strictly greater generations.
	Generation() uint64

	// Read fetches count items starting at index. It must be called on the
	// owner's watchable thread and requires index+count <= Total. The task
	// fails with ErrCancelled if the snapshot is superseded or its owner
	// disposed before the page is delivered.
	Read(index, count uint32) *task.Task[Fragment[T]]
}

// ClientSnapshot is the descriptor of a result set as returned by an
// endpoint client.
type ClientSnapshot interface {
	Total() uint32
	Alpha() []uint32
}

// ResultSet is a plain ClientSnapshot.
type ResultSet struct {
	Count uint32
	Index []uint32
}

// Total is part of ClientSnapshot.
func (r ResultSet) Total() uint32 {
	return r.Count
}

// Alpha is part of ClientSnapshot.
func (r ResultSet) Alpha() []uint32 {
	return r.Index
}
