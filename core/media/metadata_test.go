// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package media_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/openhome/ohtopology/core/media"
)

type metadataSuite struct {
	testing.IsolationSuite

	tags *media.TagManager
}

var _ = gc.Suite(&metadataSuite{})

func (s *metadataSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.tags = media.NewTagManager()
}

func (s *metadataSuite) TestTagLookup(c *gc.C) {
	tag, ok := s.tags.Lookup("audio.artist")
	c.Assert(ok, jc.IsTrue)
	c.Check(tag, gc.Equals, s.tags.Audio.Artist)
	c.Check(tag.Name(), gc.Equals, "artist")
	c.Check(tag.Namespace(), gc.Equals, "audio")
	c.Check(tag.String(), gc.Equals, "audio.artist")

	_, ok = s.tags.Lookup("audio.composer")
	c.Check(ok, jc.IsFalse)

	tags := s.tags.Tags()
	c.Check(tags[0], gc.Equals, s.tags.System.Folder)
	for i, tag := range tags {
		c.Check(tag.ID(), gc.Equals, i)
	}
}

func (s *metadataSuite) TestAddKeepsFirstValue(c *gc.C) {
	md := media.NewMetadata()
	md.Add(s.tags.Audio.Artist, "Lou Reed")
	md.Add(s.tags.Audio.Title, "Heroin")
	md.Add(s.tags.Audio.Artist, "John Cale")

	c.Check(md.Len(), gc.Equals, 2)
	c.Check(md.Tags(), jc.DeepEquals, []*media.Tag{s.tags.Audio.Artist, s.tags.Audio.Title})
	c.Check(md.First(s.tags.Audio.Artist), gc.Equals, "Lou Reed")

	value, ok := md.Get(s.tags.Audio.Artist)
	c.Assert(ok, jc.IsTrue)
	c.Check(value.Values(), jc.DeepEquals, []string{"Lou Reed", "John Cale"})

	c.Check(md.First(s.tags.Audio.Genre), gc.Equals, "")
}

func (s *metadataSuite) TestCopyIsIndependent(c *gc.C) {
	md := media.NewMetadata()
	md.Add(s.tags.Audio.Album, "Loaded")

	copied := media.CopyMetadata(md)
	copied.Add(s.tags.Audio.Album, "Squeeze")
	copied.AddFrom(s.tags.Audio.Genre, md)

	value, _ := md.Get(s.tags.Audio.Album)
	c.Check(value.Values(), jc.DeepEquals, []string{"Loaded"})
	c.Check(copied.Len(), gc.Equals, 1)

	c.Check(media.CopyMetadata(nil).Len(), gc.Equals, 0)
}

func (s *metadataSuite) TestDatum(c *gc.C) {
	md := media.NewMetadata()
	md.Add(s.tags.Container.Title, "Artists")

	container := media.NewDatumFrom(md, s.tags.Container.Title, s.tags.Audio.Artist)
	c.Check(container.IsContainer(), jc.IsTrue)
	c.Check(container.Type(), jc.DeepEquals, []*media.Tag{s.tags.Container.Title, s.tags.Audio.Artist})
	c.Check(container.First(s.tags.Container.Title), gc.Equals, "Artists")

	track := media.NewDatum()
	c.Check(track.IsContainer(), jc.IsFalse)
}

func (s *metadataSuite) TestNewValueRequiresString(c *gc.C) {
	c.Check(func() { media.NewValue() }, gc.PanicMatches, "media value requires at least one string")
}
