// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media

import (
	"slices"
)

// Value is the value of a tag. A tag may carry several values, for example
// a track with more than one artist; Value returns the first.
type Value struct {
	values []string
}

// NewValue returns a Value holding the given strings. At least one value
// is required.
func NewValue(values ...string) Value {
	if len(values) == 0 {
		panic("media value requires at least one string")
	}
	return Value{values: slices.Clone(values)}
}

// Value returns the first value.
func (v Value) Value() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Values returns every value.
func (v Value) Values() []string {
	return slices.Clone(v.values)
}

// Metadata maps tags to values. Iteration order is insertion order.
type Metadata struct {
	tags   []*Tag
	values map[*Tag]Value
}

// NewMetadata returns empty metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		values: make(map[*Tag]Value),
	}
}

// CopyMetadata returns a copy of the given metadata.
func CopyMetadata(from *Metadata) *Metadata {
	m := NewMetadata()
	if from == nil {
		return m
	}
	for _, tag := range from.tags {
		m.AddValue(tag, from.values[tag])
	}
	return m
}

// Add appends a string to the tag's values.
func (m *Metadata) Add(tag *Tag, value string) {
	m.AddValue(tag, NewValue(value))
}

// AddValue appends every string of value to the tag's values. The first
// value of a tag is never replaced.
func (m *Metadata) AddValue(tag *Tag, value Value) {
	existing, ok := m.values[tag]
	if !ok {
		m.tags = append(m.tags, tag)
		m.values[tag] = NewValue(value.values...)
		return
	}
	m.values[tag] = NewValue(append(existing.Values(), value.values...)...)
}

// AddFrom copies the tag's values from other, if other has any.
func (m *Metadata) AddFrom(tag *Tag, other *Metadata) {
	if value, ok := other.Get(tag); ok {
		m.AddValue(tag, value)
	}
}

// Get returns the tag's value.
func (m *Metadata) Get(tag *Tag) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	value, ok := m.values[tag]
	return value, ok
}

// First returns the tag's first value, or "" when absent.
func (m *Metadata) First(tag *Tag) string {
	value, _ := m.Get(tag)
	return value.Value()
}

// Tags returns the tags present, in insertion order.
func (m *Metadata) Tags() []*Tag {
	if m == nil {
		return nil
	}
	return slices.Clone(m.tags)
}

// Len returns the number of tags present.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tags)
}

// Datum is one item of a media catalog: its metadata plus the tags that
// describe what kind of thing it is. A container datum browsable by
// artist then album has type [Container.Title, Audio.Artist, Audio.Album];
// a playable track has an empty type.
type Datum struct {
	*Metadata
	kind []*Tag
}

// NewDatum returns an empty datum of the given type.
func NewDatum(kind ...*Tag) *Datum {
	return &Datum{
		Metadata: NewMetadata(),
		kind:     slices.Clone(kind),
	}
}

// NewDatumFrom returns a datum of the given type holding a copy of the
// metadata.
func NewDatumFrom(metadata *Metadata, kind ...*Tag) *Datum {
	return &Datum{
		Metadata: CopyMetadata(metadata),
		kind:     slices.Clone(kind),
	}
}

// Type returns the tags describing the kind of datum.
func (d *Datum) Type() []*Tag {
	return slices.Clone(d.kind)
}

// IsContainer reports whether the datum can be browsed into.
func (d *Datum) IsContainer() bool {
	return len(d.kind) > 0
}
