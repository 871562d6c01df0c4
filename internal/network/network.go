// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package network tracks the devices present on the network and publishes,
// per service type, the watchable list of devices offering it. Devices
// join and leave through the structural change scheduler, so every list
// observes joins and departures in the order they were reported.
package network

import (
	"sort"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/pubsub/v2"

	"github.com/openhome/ohtopology/core/logger"
	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/core/watchable"
	"github.com/openhome/ohtopology/internal/scheduler"
	"github.com/openhome/ohtopology/internal/watchablethread"
)

// ErrNetworkDisposed is returned when a device is reported to a network
// that has been disposed.
const ErrNetworkDisposed = errors.ConstError("network disposed")

// Topics published on the network's hub. The data is a DeviceEvent.
const (
	TopicDeviceAdded   = "device.added"
	TopicDeviceRemoved = "device.removed"
)

// settleDelay is the pause between polls of devices that have not settled.
const settleDelay = 10 * time.Millisecond

// DeviceEvent describes a device joining or leaving the network.
type DeviceEvent struct {
	Udn string
}

// Config holds the dependencies of a Network.
type Config struct {
	// Thread is the watchable thread to adopt. When nil the network starts
	// a thread of its own, named Name, and stops it on Dispose.
	Thread watchable.Thread
	Name   string

	Logger logger.Logger

	// MaxCacheEntries bounds the id cache.
	MaxCacheEntries int

	// Hub receives device events. When nil the network creates one.
	Hub *pubsub.SimpleHub

	// Clock paces Wait while devices settle. When nil the wall clock is
	// used.
	Clock clock.Clock
}

// Validate returns an error if the config cannot create a Network.
func (config Config) Validate() error {
	if config.Thread == nil && config.Name == "" {
		return errors.NotValidf("empty Name without Thread")
	}
	if config.Logger == nil {
		return errors.NotValidf("nil Logger")
	}
	if config.MaxCacheEntries <= 0 {
		return errors.NotValidf("MaxCacheEntries %d", config.MaxCacheEntries)
	}
	return nil
}

// Network is the set of devices known to a control point.
type Network struct {
	config Config

	thread    watchable.Thread
	owned     *watchablethread.Thread
	scheduler *scheduler.Scheduler
	tags      *media.TagManager
	cache     *IdCache
	hub       *pubsub.SimpleHub
	clock     clock.Clock

	mu       sync.Mutex
	disposed bool

	// Confined to the thread.
	devices map[string]*Device
	lists   map[string]*watchable.Unordered[*Device]
}

// New returns a Network.
func New(config Config) (*Network, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	cache, err := NewIdCache(config.MaxCacheEntries)
	if err != nil {
		return nil, errors.Trace(err)
	}

	n := &Network{
		config:  config,
		thread:  config.Thread,
		tags:    media.NewTagManager(),
		cache:   cache,
		hub:     config.Hub,
		clock:   config.Clock,
		devices: make(map[string]*Device),
		lists:   make(map[string]*watchable.Unordered[*Device]),
	}
	if n.hub == nil {
		n.hub = pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{
			Logger: config.Logger,
		})
	}
	if n.clock == nil {
		n.clock = clock.WallClock
	}
	if n.thread == nil {
		n.owned, err = watchablethread.New(watchablethread.Config{
			Name:   config.Name,
			Logger: config.Logger,
		})
		if err != nil {
			return nil, errors.Annotate(err, "starting watchable thread")
		}
		n.thread = n.owned
	}

	n.scheduler, err = scheduler.New(scheduler.Config{
		Thread: n.thread,
		Logger: config.Logger,
	})
	if err != nil {
		if n.owned != nil {
			n.owned.Kill()
			_ = n.owned.Wait()
		}
		return nil, errors.Annotate(err, "starting scheduler")
	}
	return n, nil
}

// Assert is part of watchable.Thread.
func (n *Network) Assert() {
	n.thread.Assert()
}

// Schedule is part of watchable.Thread.
func (n *Network) Schedule(action func()) {
	n.thread.Schedule(action)
}

// Execute is part of watchable.Thread.
func (n *Network) Execute(action func()) {
	n.thread.Execute(action)
}

// Drain is part of watchable.Thread.
func (n *Network) Drain() {
	n.thread.Drain()
}

// TagManager returns the tags used to describe media on the network.
func (n *Network) TagManager() *media.TagManager {
	return n.tags
}

// IdCache returns the network's id cache.
func (n *Network) IdCache() *IdCache {
	return n.cache
}

// Hub returns the hub on which device events are published.
func (n *Network) Hub() *pubsub.SimpleHub {
	return n.hub
}

// Add reports a device joining the network. A device whose udn is already
// present is disposed instead.
func (n *Network) Add(device InjectorDevice) error {
	if err := n.checkNotDisposed(); err != nil {
		return errors.Trace(err)
	}
	err := n.scheduler.Schedule(func() {
		n.add(device)
	})
	return errors.Annotatef(err, "adding device %q", device.Udn())
}

// Remove reports a device leaving the network.
func (n *Network) Remove(device InjectorDevice) error {
	if err := n.checkNotDisposed(); err != nil {
		return errors.Trace(err)
	}
	err := n.scheduler.Schedule(func() {
		n.remove(device.Udn())
	})
	return errors.Annotatef(err, "removing device %q", device.Udn())
}

func (n *Network) add(device InjectorDevice) {
	handle := newDevice(device)
	udn := handle.Udn()
	if _, ok := n.devices[udn]; ok {
		n.config.Logger.Debugf("device %q already present", udn)
		handle.Dispose()
		return
	}
	n.devices[udn] = handle

	for _, serviceType := range n.serviceTypes() {
		if handle.HasService(serviceType) {
			n.lists[serviceType].Add(handle)
		}
	}
	n.config.Logger.Debugf("device %q added", udn)
	_ = n.hub.Publish(TopicDeviceAdded, DeviceEvent{Udn: udn})
}

func (n *Network) remove(udn string) {
	handle, ok := n.devices[udn]
	if !ok {
		return
	}
	for _, serviceType := range n.serviceTypes() {
		if handle.HasService(serviceType) {
			n.lists[serviceType].Remove(handle)
		}
	}
	delete(n.devices, udn)
	n.cache.Purge(udn)
	handle.Dispose()

	n.config.Logger.Debugf("device %q removed", udn)
	_ = n.hub.Publish(TopicDeviceRemoved, DeviceEvent{Udn: udn})
}

// Create returns the watchable list of devices offering the service type.
// It must be called on the thread.
func (n *Network) Create(serviceType string) *watchable.Unordered[*Device] {
	n.thread.Assert()
	if err := n.checkNotDisposed(); err != nil {
		panic(err)
	}

	if list, ok := n.lists[serviceType]; ok {
		return list
	}
	list := watchable.NewUnordered[*Device](n.thread)
	n.lists[serviceType] = list
	for _, udn := range n.udns() {
		if device := n.devices[udn]; device.HasService(serviceType) {
			list.Add(device)
		}
	}
	return list
}

// Wait blocks until every reported change has been applied, the thread is
// idle and every device has settled.
func (n *Network) Wait() {
	for {
		for !n.waitDevices() {
			<-n.clock.After(settleDelay)
		}
		n.thread.Drain()
		if n.waitDevices() {
			return
		}
	}
}

func (n *Network) waitDevices() bool {
	n.scheduler.WaitIdle()

	complete := true
	n.thread.Execute(func() {
		for _, device := range n.devices {
			complete = device.Wait() && complete
		}
	})
	return complete
}

// Dispose stops the network. Device lists must have no watchers left. The
// returned error describes the faults raised on an owned thread.
func (n *Network) Dispose() error {
	n.mu.Lock()
	if n.disposed {
		n.mu.Unlock()
		panic("network disposed twice")
	}
	n.disposed = true
	n.mu.Unlock()

	n.scheduler.Kill()
	if err := n.scheduler.Wait(); err != nil {
		n.config.Logger.Errorf("stopping scheduler: %v", err)
	}

	n.thread.Execute(func() {
		for _, serviceType := range n.serviceTypes() {
			n.lists[serviceType].Dispose()
		}
		for _, udn := range n.udns() {
			n.devices[udn].Dispose()
		}
		n.lists = nil
		n.devices = nil
	})

	if n.owned == nil {
		return nil
	}
	n.owned.Kill()
	return errors.Trace(n.owned.Wait())
}

func (n *Network) checkNotDisposed() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.disposed {
		return ErrNetworkDisposed
	}
	return nil
}

func (n *Network) serviceTypes() []string {
	serviceTypes := make([]string, 0, len(n.lists))
	for serviceType := range n.lists {
		serviceTypes = append(serviceTypes, serviceType)
	}
	sort.Strings(serviceTypes)
	return serviceTypes
}

func (n *Network) udns() []string {
	udns := make([]string, 0, len(n.devices))
	for udn := range n.devices {
		udns = append(udns, udn)
	}
	sort.Strings(udns)
	return udns
}
