// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package logger

import (
	"github.com/juju/loggo/v2"
)

// Logger is the logging interface used throughout ohtopology. It is
// satisfied by loggo.Logger.
type Logger interface {
	Criticalf(string, ...any)
	Errorf(string, ...any)
	Warningf(string, ...any)
	Infof(string, ...any)
	Debugf(string, ...any)
	Tracef(string, ...any)

	IsTraceEnabled() bool
}

// GetLogger returns the named logger. Names are dotted paths rooted at
// "ohtopology", for example "ohtopology.mediaendpoint".
func GetLogger(name string) Logger {
	return loggo.GetLogger(name)
}

// Configure applies a loggo configuration specification such as
// "<root>=INFO;ohtopology.mediaendpoint=TRACE".
func Configure(spec string) error {
	return loggo.ConfigureLoggers(spec)
}
