// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package refdata serves the small, slow-changing reference lists
// (platforms, genres, stores) through a TTL cache, so filter UIs do not
// hit the database on every request.
package refdata

import (
	"sync"
	"time"

	"github.com/playdex/playdex/internal/metrics"
)

// Cache is a thread-safe in-memory cache with TTL expiration.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// NewCache creates a cache whose entries expire after ttl. A background
// loop sweeps expired entries until Stop is called.
func NewCache(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a value. The second return is false on miss or expiry.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		metrics.RefCacheMisses.Inc()
		return nil, false
	}
	metrics.RefCacheHits.Inc()
	return e.value, true
}

// Set stores a value under the cache TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = &entry{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Delete removes one entry.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
}

// Len returns the number of entries, expired ones included until the next
// sweep.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the cleanup loop. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			metrics.RefCacheEvictions.Inc()
		}
	}
	c.mu.Unlock()
}
