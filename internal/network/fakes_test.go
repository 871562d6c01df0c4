// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package network_test

import (
	"sync"

	"github.com/juju/collections/set"

	"github.com/openhome/ohtopology/internal/network"
)

type fakeDevice struct {
	udn      string
	services set.Strings
	provides map[string]any

	mu          sync.Mutex
	unsettled   int
	waits       int
	disposed    bool
	disposeHook func()
}

func newFakeDevice(udn string, services ...string) *fakeDevice {
	return &fakeDevice{
		udn:      udn,
		services: set.NewStrings(services...),
	}
}

func (d *fakeDevice) Udn() string {
	return d.udn
}

func (d *fakeDevice) HasService(serviceType string) bool {
	return d.services.Contains(serviceType)
}

func (d *fakeDevice) Wait() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.waits++
	if d.unsettled > 0 {
		d.unsettled--
		return false
	}
	return true
}

func (d *fakeDevice) Dispose() {
	d.mu.Lock()
	d.disposed = true
	hook := d.disposeHook
	d.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (d *fakeDevice) isDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

// providingDevice also hands out services.
type providingDevice struct {
	*fakeDevice
}

func (d providingDevice) Service(serviceType string) (any, bool) {
	service, ok := d.provides[serviceType]
	return service, ok
}

type listWatcher struct {
	mu     sync.Mutex
	events []string
}

func (w *listWatcher) UnorderedOpen()        {}
func (w *listWatcher) UnorderedInitialised() { w.record("initialised") }
func (w *listWatcher) UnorderedClose()       {}

func (w *listWatcher) UnorderedAdd(device *network.Device) {
	w.record("add " + device.Udn())
}

func (w *listWatcher) UnorderedRemove(device *network.Device) {
	w.record("remove " + device.Udn())
}

func (w *listWatcher) record(event string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, event)
}

func (w *listWatcher) Events() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.events...)
}
