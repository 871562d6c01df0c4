// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package library

// ServiceMediaEndpoint is the service type under which a device offers its
// media endpoint.
const ServiceMediaEndpoint = "MediaEndpoint"

// Device offers an endpoint on the network. It is always settled.
type Device struct {
	udn      string
	endpoint *Endpoint
}

// NewDevice returns a device offering the endpoint.
func NewDevice(udn string, endpoint *Endpoint) *Device {
	return &Device{
		udn:      udn,
		endpoint: endpoint,
	}
}

// Udn returns the device's unique device name.
func (d *Device) Udn() string {
	return d.udn
}

// HasService reports whether serviceType is ServiceMediaEndpoint.
func (d *Device) HasService(serviceType string) bool {
	return serviceType == ServiceMediaEndpoint
}

// Service returns the endpoint for ServiceMediaEndpoint.
func (d *Device) Service(serviceType string) (any, bool) {
	if !d.HasService(serviceType) {
		return nil, false
	}
	return d.endpoint, true
}

// Wait always reports the device as settled.
func (d *Device) Wait() bool {
	return true
}

// Dispose closes the endpoint.
func (d *Device) Dispose() {
	d.endpoint.Close()
}
