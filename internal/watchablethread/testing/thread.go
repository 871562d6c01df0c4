// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/openhome/ohtopology/internal/testhelpers"
	"github.com/openhome/ohtopology/internal/watchablethread"
)

// NewThread starts a watchable thread logging to c. Callers stop it
// with workertest.CleanKill.
func NewThread(c *gc.C) *watchablethread.Thread {
	thread, err := watchablethread.New(watchablethread.Config{
		Name:   c.TestName(),
		Logger: testhelpers.NewCheckLogger(c),
	})
	c.Assert(err, jc.ErrorIsNil)
	return thread
}
