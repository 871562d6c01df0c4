// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package library serves an in-memory music catalog as a media endpoint.
// The catalog is browsed from four root containers: every track, tracks by
// album artist then album, albums, and tracks by genre.
package library

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/juju/errors"

	"github.com/openhome/ohtopology/core/media"
)

// Titles of the root containers.
const (
	RootTracks  = "Tracks"
	RootArtists = "Artist"
	RootAlbums  = "Album"
	RootGenres  = "Genre"
)

const (
	unknownArtist = "Unknown Artist"
	unknownAlbum  = "Unknown Album"
)

// Track describes one playable item of the catalog.
type Track struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist,omitempty"`
	Album       string `yaml:"album,omitempty"`
	AlbumArtist string `yaml:"albumartist,omitempty"`
	Genre       string `yaml:"genre,omitempty"`
	Number      int    `yaml:"track,omitempty"`
	Disc        int    `yaml:"disc,omitempty"`
	Duration    int    `yaml:"duration,omitempty"`
	Uri         string `yaml:"uri,omitempty"`
	Artwork     string `yaml:"artwork,omitempty"`
}

type album struct {
	id     string
	title  string
	artist string
	datum  *media.Datum
	tracks []*media.Datum
}

// Catalog is an immutable, indexed set of tracks.
type Catalog struct {
	tags *media.TagManager

	roots  []*media.Datum
	tracks []*media.Datum

	albums     []*album
	albumsByID map[string]*album

	artists      []*media.Datum
	artistAlbums map[string][]*album

	genres      []*media.Datum
	genreTracks map[string][]*media.Datum
}

// NewCatalog indexes the tracks. Datums are described with the given tags,
// which must be those of the control point reading the catalog.
func NewCatalog(tags *media.TagManager, tracks []Track) *Catalog {
	c := &Catalog{
		tags:         tags,
		albumsByID:   make(map[string]*album),
		artistAlbums: make(map[string][]*album),
		genreTracks:  make(map[string][]*media.Datum),
	}
	c.roots = []*media.Datum{
		c.container(RootTracks),
		c.container(RootArtists, tags.Audio.Artist, tags.Audio.Album),
		c.container(RootAlbums, tags.Audio.Album),
		c.container(RootGenres, tags.Audio.Genre),
	}

	normalised := make([]Track, len(tracks))
	for i, track := range tracks {
		normalised[i] = normalise(track)
	}
	sort.SliceStable(normalised, func(i, j int) bool {
		a, b := normalised[i], normalised[j]
		if a.AlbumArtist != b.AlbumArtist {
			return lessName(a.AlbumArtist, b.AlbumArtist)
		}
		if a.Album != b.Album {
			return lessName(a.Album, b.Album)
		}
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		return a.Number < b.Number
	})

	// Albums are numbered in album artist order.
	byKey := make(map[string]int)
	var grouped [][]Track
	for _, track := range normalised {
		key := track.AlbumArtist + "\x00" + track.Album
		i, ok := byKey[key]
		if !ok {
			i = len(grouped)
			byKey[key] = i
			grouped = append(grouped, nil)
		}
		grouped[i] = append(grouped[i], track)
	}

	for i, albumTracks := range grouped {
		a := &album{
			id:     strconv.Itoa(i + 1),
			title:  albumTracks[0].Album,
			artist: albumTracks[0].AlbumArtist,
		}
		a.datum = c.albumDatum(a, albumTracks)
		for _, track := range albumTracks {
			datum := c.trackDatum(a, track)
			a.tracks = append(a.tracks, datum)
			c.tracks = append(c.tracks, datum)
			if track.Genre != "" {
				c.genreTracks[track.Genre] = append(c.genreTracks[track.Genre], datum)
			}
		}
		c.albums = append(c.albums, a)
		c.albumsByID[a.id] = a
		c.artistAlbums[a.artist] = append(c.artistAlbums[a.artist], a)
	}
	sort.SliceStable(c.albums, func(i, j int) bool {
		return lessName(c.albums[i].title, c.albums[j].title)
	})

	for _, name := range sortedNames(c.artistAlbums) {
		datum := media.NewDatum(tags.Audio.Artist, tags.Audio.Album)
		datum.Add(tags.Audio.Artist, name)
		c.artists = append(c.artists, datum)
	}
	for _, name := range sortedNames(c.genreTracks) {
		datum := media.NewDatum(tags.Audio.Genre)
		datum.Add(tags.Audio.Genre, name)
		c.genres = append(c.genres, datum)
	}
	return c
}

func normalise(track Track) Track {
	track.Title = strings.TrimSpace(track.Title)
	track.Artist = strings.TrimSpace(track.Artist)
	track.Album = strings.TrimSpace(track.Album)
	track.AlbumArtist = strings.TrimSpace(track.AlbumArtist)
	track.Genre = strings.TrimSpace(track.Genre)
	if track.Artist == "" {
		track.Artist = unknownArtist
	}
	if track.AlbumArtist == "" {
		track.AlbumArtist = track.Artist
	}
	if track.Album == "" {
		track.Album = unknownAlbum
	}
	if track.Disc <= 0 {
		track.Disc = 1
	}
	return track
}

func (c *Catalog) container(title string, kind ...*media.Tag) *media.Datum {
	datum := media.NewDatum(append([]*media.Tag{c.tags.Container.Title}, kind...)...)
	datum.Add(c.tags.Container.Title, title)
	return datum
}

func (c *Catalog) albumDatum(a *album, tracks []Track) *media.Datum {
	audio := c.tags.Audio
	discs := 1
	artwork := ""
	for _, track := range tracks {
		discs = max(discs, track.Disc)
		if artwork == "" {
			artwork = track.Artwork
		}
	}
	datum := media.NewDatum(audio.Album)
	datum.Add(audio.Album, a.id)
	datum.Add(audio.Artist, a.artist)
	datum.Add(audio.AlbumTitle, a.title)
	datum.Add(audio.AlbumArtist, a.artist)
	datum.Add(audio.AlbumDiscs, strconv.Itoa(discs))
	if artwork != "" {
		datum.Add(audio.Artwork, artwork)
	}
	return datum
}

func (c *Catalog) trackDatum(a *album, track Track) *media.Datum {
	audio := c.tags.Audio
	datum := media.NewDatum()
	datum.AddFrom(audio.Album, a.datum.Metadata)
	datum.Add(audio.Artist, track.Artist)
	datum.Add(audio.AlbumTitle, a.title)
	datum.Add(audio.AlbumArtist, a.artist)
	datum.AddFrom(audio.AlbumDiscs, a.datum.Metadata)
	datum.Add(audio.Title, track.Title)
	if track.Number > 0 {
		datum.Add(audio.Track, strconv.Itoa(track.Number))
	}
	if track.Duration > 0 {
		datum.Add(audio.Duration, strconv.Itoa(track.Duration))
	}
	if track.Genre != "" {
		datum.Add(audio.Genre, track.Genre)
	}
	if track.Uri != "" {
		datum.Add(audio.Uri, track.Uri)
	}
	if track.Artwork != "" {
		datum.Add(audio.Artwork, track.Artwork)
	} else {
		datum.AddFrom(audio.Artwork, a.datum.Metadata)
	}
	return datum
}

// Tracks returns the number of tracks.
func (c *Catalog) Tracks() int {
	return len(c.tracks)
}

// Browse returns the children of the datum, or the root containers when
// datum is nil.
func (c *Catalog) Browse(datum *media.Datum) (*Results, error) {
	if datum == nil {
		return newResults(c.roots, nil), nil
	}
	kind := datum.Type()
	if len(kind) == 0 {
		return nil, errors.NotValidf("browsing a track")
	}
	audio := c.tags.Audio
	switch kind[0] {
	case c.tags.Container.Title:
		switch title := datum.First(c.tags.Container.Title); title {
		case RootTracks:
			return newResults(c.tracks, nil), nil
		case RootArtists:
			return newResults(c.artists, nil), nil
		case RootAlbums:
			return newResults(c.albumDatums(c.albums), nil), nil
		case RootGenres:
			return newResults(c.genres, nil), nil
		default:
			return nil, errors.NotFoundf("container %q", title)
		}
	case audio.Artist:
		return c.Link(audio.Artist, datum.First(audio.Artist))
	case audio.Album:
		return c.Link(audio.Album, datum.First(audio.Album))
	case audio.Genre:
		return c.Link(audio.Genre, datum.First(audio.Genre))
	}
	return nil, errors.NotValidf("browsing datum of type %v", kind)
}

// List returns the distinct values of the tag, with an alpha map.
func (c *Catalog) List(tag *media.Tag) (*Results, error) {
	audio := c.tags.Audio
	var (
		items []*media.Datum
		names []string
	)
	switch tag {
	case audio.Artist:
		items = c.artists
		for _, datum := range items {
			names = append(names, datum.First(audio.Artist))
		}
	case audio.Album:
		items = c.albumDatums(c.albums)
		for _, a := range c.albums {
			names = append(names, a.title)
		}
	case audio.Genre:
		items = c.genres
		for _, datum := range items {
			names = append(names, datum.First(audio.Genre))
		}
	default:
		return nil, errors.NotSupportedf("listing %s", tag)
	}
	return newResults(items, alphaMap(names)), nil
}

// Link returns the items whose tag has the value: the albums of an artist,
// the tracks of an album or the tracks of a genre.
func (c *Catalog) Link(tag *media.Tag, value string) (*Results, error) {
	audio := c.tags.Audio
	switch tag {
	case audio.Artist:
		return newResults(c.albumDatums(c.artistAlbums[value]), nil), nil
	case audio.Album:
		a, ok := c.albumsByID[value]
		if !ok {
			return newResults(nil, nil), nil
		}
		return newResults(a.tracks, nil), nil
	case audio.Genre:
		return newResults(c.genreTracks[value], nil), nil
	}
	return nil, errors.NotSupportedf("linking %s", tag)
}

// Search returns the tracks whose title, artist or album title contains the
// text, ignoring case.
func (c *Catalog) Search(text string) (*Results, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return newResults(nil, nil), nil
	}
	audio := c.tags.Audio
	var matches []*media.Datum
	for _, track := range c.tracks {
		for _, tag := range []*media.Tag{audio.Title, audio.Artist, audio.AlbumTitle} {
			if strings.Contains(strings.ToLower(track.First(tag)), needle) {
				matches = append(matches, track)
				break
			}
		}
	}
	return newResults(matches, nil), nil
}

func (c *Catalog) albumDatums(albums []*album) []*media.Datum {
	datums := make([]*media.Datum, len(albums))
	for i, a := range albums {
		datums[i] = a.datum
	}
	return datums
}

// bucket places names starting with a letter after every other name, in
// alphabetical order.
func bucket(name string) int {
	for _, r := range name {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			return int(r-'A') + 1
		}
		return 0
	}
	return 0
}

func lessName(a, b string) bool {
	if ba, bb := bucket(a), bucket(b); ba != bb {
		return ba < bb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

func sortedNames[V any](index map[string]V) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return lessName(names[i], names[j])
	})
	return names
}

// alphaMap returns, for "#" and each letter A to Z, the index of the first
// name in that bucket or later. The names must be sorted with lessName.
func alphaMap(names []string) []uint32 {
	alpha := make([]uint32, 27)
	i := 0
	for b := range alpha {
		for i < len(names) && bucket(names[i]) < b {
			i++
		}
		alpha[b] = uint32(i)
	}
	return alpha
}
