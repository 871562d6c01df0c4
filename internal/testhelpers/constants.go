// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testhelpers

import (
	"time"
)

// ShortWait is a reasonable amount of time to block waiting for something
// that shouldn't actually happen, such as a superseded query delivering a
// snapshot.
const ShortWait = 50 * time.Millisecond

// LongWait is used when something should have already happened, or happens
// quickly, but we want to make sure we just haven't missed it.
const LongWait = 10 * time.Second
