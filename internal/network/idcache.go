// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package network

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/juju/errors"

	"github.com/openhome/ohtopology/core/media"
)

// IdCache holds the metadata of items recently seen on devices, keyed by
// device and item id. The least recently used entries are evicted once the
// cache is full.
type IdCache struct {
	cache *lru.Cache[string, *media.Metadata]
}

// NewIdCache returns a cache holding at most size entries.
func NewIdCache(size int) (*IdCache, error) {
	if size <= 0 {
		return nil, errors.NotValidf("cache size %d", size)
	}
	cache, err := lru.New[string, *media.Metadata](size)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &IdCache{cache: cache}, nil
}

func cacheKey(udn, id string) string {
	return udn + "/" + id
}

// Add stores the metadata of an item.
func (c *IdCache) Add(udn, id string, metadata *media.Metadata) {
	c.cache.Add(cacheKey(udn, id), metadata)
}

// Get returns the metadata of an item.
func (c *IdCache) Get(udn, id string) (*media.Metadata, bool) {
	return c.cache.Get(cacheKey(udn, id))
}

// Purge drops every entry of the device.
func (c *IdCache) Purge(udn string) {
	prefix := udn + "/"
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
}

// Len returns the number of entries.
func (c *IdCache) Len() int {
	return c.cache.Len()
}
