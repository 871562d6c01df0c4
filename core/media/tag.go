// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media

import (
	"fmt"
	"sort"
)

// Tag identifies one piece of metadata, for example the title of a track.
// Tags are interned by a TagManager and compared by pointer.
type Tag struct {
	id        int
	name      string
	namespace string
}

// ID returns the tag's manager-unique identifier.
func (t *Tag) ID() int {
	return t.id
}

// Name returns the short name, for example "artist".
func (t *Tag) Name() string {
	return t.name
}

// Namespace returns the tag family, for example "audio".
func (t *Tag) Namespace() string {
	return t.namespace
}

// FullName returns "namespace.name".
func (t *Tag) FullName() string {
	return t.namespace + "." + t.name
}

// String is part of fmt.Stringer.
func (t *Tag) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.FullName()
}

// SystemTags are tags private to the control point.
type SystemTags struct {
	// Folder carries the raw, undecoded metadata of an item.
	Folder *Tag
}

// ContainerTags describe containers.
type ContainerTags struct {
	Title *Tag
}

// AudioTags describe audio items and the containers that group them.
type AudioTags struct {
	Title       *Tag
	Artist      *Tag
	Album       *Tag
	AlbumTitle  *Tag
	AlbumArtist *Tag
	AlbumDiscs  *Tag
	Genre       *Tag
	Track       *Tag
	Duration    *Tag
	Uri         *Tag
	Artwork     *Tag
}

// TagManager owns the set of known tags.
type TagManager struct {
	System    SystemTags
	Container ContainerTags
	Audio     AudioTags

	byName map[string]*Tag
}

// NewTagManager returns a TagManager holding the well-known tags.
func NewTagManager() *TagManager {
	m := &TagManager{
		byName: make(map[string]*Tag),
	}
	m.System = SystemTags{
		Folder: m.add("system", "folder"),
	}
	m.Container = ContainerTags{
		Title: m.add("container", "title"),
	}
	m.Audio = AudioTags{
		Title:       m.add("audio", "title"),
		Artist:      m.add("audio", "artist"),
		Album:       m.add("audio", "album"),
		AlbumTitle:  m.add("audio", "albumtitle"),
		AlbumArtist: m.add("audio", "albumartist"),
		AlbumDiscs:  m.add("audio", "albumdiscs"),
		Genre:       m.add("audio", "genre"),
		Track:       m.add("audio", "track"),
		Duration:    m.add("audio", "duration"),
		Uri:         m.add("audio", "uri"),
		Artwork:     m.add("audio", "artwork"),
	}
	return m
}

func (m *TagManager) add(namespace, name string) *Tag {
	tag := &Tag{
		id:        len(m.byName),
		name:      name,
		namespace: namespace,
	}
	full := tag.FullName()
	if _, ok := m.byName[full]; ok {
		panic(fmt.Sprintf("duplicate tag %q", full))
	}
	m.byName[full] = tag
	return tag
}

// Lookup returns the tag with the given full name.
func (m *TagManager) Lookup(fullName string) (*Tag, bool) {
	tag, ok := m.byName[fullName]
	return tag, ok
}

// Tags returns every known tag ordered by id.
func (m *TagManager) Tags() []*Tag {
	tags := make([]*Tag, 0, len(m.byName))
	for _, tag := range m.byName {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].id < tags[j].id
	})
	return tags
}
