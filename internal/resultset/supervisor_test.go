// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resultset_test

import (
	"context"
	"time"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/juju/worker/v4/workertest"
	gc "gopkg.in/check.v1"

	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/internal/resultset"
	"github.com/openhome/ohtopology/internal/task"
	"github.com/openhome/ohtopology/internal/testhelpers"
	"github.com/openhome/ohtopology/internal/watchablethread"
	threadtesting "github.com/openhome/ohtopology/internal/watchablethread/testing"
)

type supervisorSuite struct {
	testing.IsolationSuite

	thread *watchablethread.Thread
}

var _ = gc.Suite(&supervisorSuite{})

func (s *supervisorSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.thread = threadtesting.NewThread(c)
}

func (s *supervisorSuite) TearDownTest(c *gc.C) {
	workertest.CleanKill(c, s.thread)
	s.IsolationSuite.TearDownTest(c)
}

// playlist is a ClientSnapshot over a fixed list of track names.
type playlist struct {
	tracks []string
	block  chan struct{}
}

func (p playlist) Total() uint32   { return uint32(len(p.tracks)) }
func (p playlist) Alpha() []uint32 { return nil }

func (p playlist) Read(ctx context.Context, index, count uint32) ([]string, error) {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.tracks[index : index+count], nil
}

type recordingWatcher struct {
	updates chan media.Snapshot[string]
}

func (w *recordingWatcher) ItemOpen(id string, value media.Snapshot[string]) {
	w.updates <- value
}

func (w *recordingWatcher) ItemUpdate(id string, value, previous media.Snapshot[string]) {
	w.updates <- value
}

func (w *recordingWatcher) ItemClose(id string, value media.Snapshot[string]) {}

func (s *supervisorSuite) TestInitialSnapshot(c *gc.C) {
	var sup *resultset.Supervisor[string]
	s.thread.Execute(func() {
		sup = resultset.New[string](s.thread, "playlist", playlist{tracks: []string{"a", "b"}})
	})

	snap := sup.Snapshot().Value()
	c.Check(snap.Total(), gc.Equals, uint32(2))
	c.Check(snap.Generation(), gc.Equals, uint64(0))

	var t *task.Task[media.Fragment[string]]
	s.thread.Execute(func() {
		t = snap.Read(0, 2)
	})
	fragment, err := t.Wait()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(fragment.Data, jc.DeepEquals, []string{"a", "b"})

	s.thread.Execute(sup.Dispose)
}

func (s *supervisorSuite) TestUpdateNotifiesWatchers(c *gc.C) {
	watcher := &recordingWatcher{updates: make(chan media.Snapshot[string], 10)}

	var sup *resultset.Supervisor[string]
	s.thread.Execute(func() {
		sup = resultset.New[string](s.thread, "playlist", nil)
		sup.Snapshot().AddWatcher(watcher)
	})

	initial := <-watcher.updates
	c.Check(initial.Total(), gc.Equals, uint32(0))
	c.Check(initial.Alpha(), gc.IsNil)

	s.thread.Execute(func() {
		sup.Update(playlist{tracks: []string{"a", "b", "c"}})
		sup.Update(playlist{tracks: []string{"d"}})
	})

	first := <-watcher.updates
	second := <-watcher.updates
	c.Check(first.Total(), gc.Equals, uint32(3))
	c.Check(first.Generation(), gc.Equals, uint64(1))
	c.Check(second.Total(), gc.Equals, uint32(1))
	c.Check(second.Generation(), gc.Equals, uint64(2))
	c.Check(sup.Snapshot().Value(), gc.Equals, second)

	s.thread.Execute(func() {
		sup.Snapshot().RemoveWatcher(watcher)
		sup.Dispose()
	})
}

func (s *supervisorSuite) TestUpdateCancelsReadsOfPreviousSnapshot(c *gc.C) {
	block := make(chan struct{})
	defer close(block)

	var (
		sup *resultset.Supervisor[string]
		t   *task.Task[media.Fragment[string]]
	)
	s.thread.Execute(func() {
		sup = resultset.New[string](s.thread, "playlist", playlist{tracks: []string{"a"}, block: block})
		t = sup.Snapshot().Value().Read(0, 1)
	})

	s.thread.Execute(func() {
		sup.Update(playlist{tracks: []string{"b"}})
	})

	select {
	case <-t.Done():
	case <-time.After(testhelpers.LongWait):
		c.Fatalf("read of superseded snapshot not cancelled")
	}
	_, err := t.Wait()
	c.Check(media.IsCancelled(err), jc.IsTrue)

	s.thread.Execute(sup.Dispose)
}

func (s *supervisorSuite) TestDisposeCancelsOutstandingReads(c *gc.C) {
	block := make(chan struct{})
	defer close(block)

	var (
		sup *resultset.Supervisor[string]
		t   *task.Task[media.Fragment[string]]
	)
	s.thread.Execute(func() {
		sup = resultset.New[string](s.thread, "playlist", playlist{tracks: []string{"a"}, block: block})
		t = sup.Snapshot().Value().Read(0, 1)
		sup.Dispose()
	})

	select {
	case <-t.Done():
	case <-time.After(testhelpers.LongWait):
		c.Fatalf("read not cancelled by dispose")
	}
	_, err := t.Wait()
	c.Check(media.IsCancelled(err), jc.IsTrue)

	c.Assert(func() {
		s.thread.Execute(func() { sup.Update(nil) })
	}, gc.PanicMatches, "result set supervisor used after dispose")
}
