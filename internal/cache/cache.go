// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// DefaultCleanupInterval is how often Run sweeps expired entries.
const DefaultCleanupInterval = 5 * time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe in-memory cache with per-entry TTL. A zero TTL
// disables storage: Set is a no-op and every Get misses.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// Stats tracks cache performance
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries live for ttl.
//
// Expired entries are removed lazily by Get and in bulk by Run, which callers
// are expected to start under their supervisor.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a value. Expired entries are deleted and reported as misses.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.record(func(s *Stats) { s.Misses++ })
		return zero, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
		c.mu.Unlock()
		return zero, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return e.value, true
}

// Set stores a value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(ttl)}
	c.stats.TotalKeys = int64(len(c.entries))
}

// Delete removes a specific cache entry by key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
	}
}

// Clear removes all entries, e.g. after new data was seeded.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Evictions += int64(len(c.entries))
	c.entries = make(map[string]entry[V])
	c.stats.TotalKeys = 0
}

// GetStats returns a snapshot of cache statistics.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Serve sweeps expired entries every DefaultCleanupInterval until ctx is
// cancelled. With String it implements suture.Service.
func (c *Cache[V]) Serve(ctx context.Context) error {
	return c.RunEvery(ctx, DefaultCleanupInterval)
}

// RunEvery is Serve with an explicit sweep interval.
func (c *Cache[V]) RunEvery(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// String names the sweeper in supervisor logs.
func (c *Cache[V]) String() string {
	return "cache-janitor"
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
		}
	}
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
}

func (c *Cache[V]) record(fn func(*Stats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}

// GenerateKey creates a cache key from the method name and parameters
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
