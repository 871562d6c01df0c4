// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package network

import (
	"sync"

	"github.com/juju/errors"
)

// InjectorDevice is a device as reported by whatever discovers devices on
// the network.
type InjectorDevice interface {
	// Udn returns the device's unique device name.
	Udn() string

	// HasService reports whether the device offers the service type.
	HasService(serviceType string) bool

	// Wait reports whether the device has settled, that is whether it has
	// no outstanding work of its own.
	Wait() bool

	// Dispose releases the device.
	Dispose()
}

// ServiceProvider is implemented by injector devices that hand out service
// implementations, for example a media endpoint.
type ServiceProvider interface {
	Service(serviceType string) (any, bool)
}

// Device is the network's handle on an injected device.
type Device struct {
	device InjectorDevice

	mu       sync.Mutex
	joiners  map[int]func()
	nextJoin int
	disposed bool
}

func newDevice(device InjectorDevice) *Device {
	return &Device{
		device:  device,
		joiners: make(map[int]func()),
	}
}

// Udn returns the device's unique device name.
func (d *Device) Udn() string {
	d.assertNotDisposed()
	return d.device.Udn()
}

// HasService reports whether the device offers the service type.
func (d *Device) HasService(serviceType string) bool {
	d.assertNotDisposed()
	return d.device.HasService(serviceType)
}

// Service returns the device's implementation of the service type.
func (d *Device) Service(serviceType string) (any, error) {
	d.assertNotDisposed()
	provider, ok := d.device.(ServiceProvider)
	if !ok {
		return nil, errors.NotSupportedf("services on device %q", d.device.Udn())
	}
	service, ok := provider.Service(serviceType)
	if !ok {
		return nil, errors.NotFoundf("service %q on device %q", serviceType, d.device.Udn())
	}
	return service, nil
}

// Join registers an action run when the device is disposed. The returned
// function unregisters it.
func (d *Device) Join(action func()) (unjoin func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		panic("join on disposed device")
	}
	id := d.nextJoin
	d.nextJoin++
	d.joiners[id] = action
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.joiners, id)
	}
}

// Wait reports whether the device has settled.
func (d *Device) Wait() bool {
	d.assertNotDisposed()
	return d.device.Wait()
}

// Dispose runs the joined actions, in the order they joined, and releases
// the underlying device.
func (d *Device) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		panic("device disposed twice")
	}
	d.disposed = true
	joiners := make([]func(), 0, len(d.joiners))
	for id := 0; id < d.nextJoin; id++ {
		if action, ok := d.joiners[id]; ok {
			joiners = append(joiners, action)
		}
	}
	d.joiners = nil
	d.mu.Unlock()

	for _, action := range joiners {
		action()
	}
	d.device.Dispose()
}

func (d *Device) assertNotDisposed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		panic("device used after dispose")
	}
}
