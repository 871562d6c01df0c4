// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package library

import (
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/openhome/ohtopology/core/logger"
)

type catalogFile struct {
	Tracks []Track `yaml:"tracks"`
}

// ParseTracks reads tracks from a YAML document of the form
//
//	tracks:
//	  - title: Blue in Green
//	    artist: Miles Davis
//	    album: Kind of Blue
//	    track: 3
func ParseTracks(data []byte) ([]Track, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Annotate(err, "parsing catalog")
	}
	for i, track := range file.Tracks {
		if strings.TrimSpace(track.Title) == "" {
			return nil, errors.NotValidf("track %d without title", i)
		}
	}
	return file.Tracks, nil
}

// LoadTracks reads tracks from the YAML file at path.
func LoadTracks(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading catalog %q", path)
	}
	tracks, err := ParseTracks(data)
	return tracks, errors.Annotatef(err, "loading %q", path)
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
}

// ScanTracks walks root for audio files and describes each from its tags.
// Details missing from the tags are taken from the path: the file name
// gives the title, or "artist - title", the directory gives the album and
// its parent the artist.
func ScanTracks(root string, logger logger.Logger) ([]Track, error) {
	var tracks []Track
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debugf("skipping %q: %v", path, err)
			return nil
		}
		if d.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		track, err := readTrack(path)
		if err != nil {
			logger.Tracef("no tags in %q: %v", path, err)
		}
		tracks = append(tracks, withPathFallback(track, root, path))
		return nil
	})
	if err != nil {
		return nil, errors.Annotatef(err, "scanning %q", root)
	}
	logger.Infof("found %d tracks under %q", len(tracks), root)
	return tracks, nil
}

func readTrack(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, errors.Trace(err)
	}
	defer f.Close()

	metadata, err := tag.ReadFrom(f)
	if err != nil {
		return Track{}, errors.Trace(err)
	}
	number, _ := metadata.Track()
	disc, _ := metadata.Disc()
	return Track{
		Title:       strings.TrimSpace(metadata.Title()),
		Artist:      strings.TrimSpace(metadata.Artist()),
		Album:       strings.TrimSpace(metadata.Album()),
		AlbumArtist: strings.TrimSpace(metadata.AlbumArtist()),
		Genre:       strings.TrimSpace(metadata.Genre()),
		Number:      number,
		Disc:        disc,
	}, nil
}

func withPathFallback(track Track, root, path string) Track {
	if track.Uri == "" {
		abs := path
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
		track.Uri = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if track.Title == "" {
		if artist, title, ok := strings.Cut(name, " - "); ok {
			track.Title = strings.TrimSpace(title)
			if track.Artist == "" {
				track.Artist = strings.TrimSpace(artist)
			}
		} else {
			track.Title = name
		}
	}

	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		rel = "."
	}
	if rel != "." && track.Album == "" {
		track.Album = filepath.Base(rel)
	}
	if parent := filepath.Dir(rel); parent != "." && track.Artist == "" {
		track.Artist = filepath.Base(parent)
	}
	return track
}
