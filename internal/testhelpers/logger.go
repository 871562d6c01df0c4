// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testhelpers

import (
	"fmt"
	"sync"

	"github.com/juju/loggo/v2"
)

// CheckLog is satisfied by *testing.T and *check.C.
type CheckLog interface {
	Logf(string, ...any)
}

// Entry is a message written to a CheckLogger.
type Entry struct {
	Level   loggo.Level
	Message string
}

// CheckLogger is a logger.Logger that writes to the test log and keeps
// every entry, so that tests can assert on what was logged.
type CheckLogger struct {
	log CheckLog

	mu      sync.Mutex
	entries []Entry
}

// NewCheckLogger returns a CheckLogger writing to log.
func NewCheckLogger(log CheckLog) *CheckLogger {
	return &CheckLogger{log: log}
}

func (l *CheckLogger) Criticalf(msg string, args ...any) { l.write(loggo.CRITICAL, msg, args) }
func (l *CheckLogger) Errorf(msg string, args ...any)    { l.write(loggo.ERROR, msg, args) }
func (l *CheckLogger) Warningf(msg string, args ...any)  { l.write(loggo.WARNING, msg, args) }
func (l *CheckLogger) Infof(msg string, args ...any)     { l.write(loggo.INFO, msg, args) }
func (l *CheckLogger) Debugf(msg string, args ...any)    { l.write(loggo.DEBUG, msg, args) }
func (l *CheckLogger) Tracef(msg string, args ...any)    { l.write(loggo.TRACE, msg, args) }

func (l *CheckLogger) IsTraceEnabled() bool { return true }

func (l *CheckLogger) write(level loggo.Level, msg string, args []any) {
	message := fmt.Sprintf(msg, args...)
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Level: level, Message: message})
	l.mu.Unlock()
	l.log.Logf("%s: %s", level, message)
}

// Messages returns the messages logged at level or above, oldest first.
func (l *CheckLogger) Messages(level loggo.Level) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var messages []string
	for _, entry := range l.entries {
		if entry.Level >= level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}
