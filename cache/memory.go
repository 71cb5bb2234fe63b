// Package cache provides receiptprefs.Cache implementations.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/CreativeUnicorns/receiptprefs"
)

var (
	_ receiptprefs.Cache = (*MemoryCache)(nil)
	_ receiptprefs.Cache = (*RedisCache)(nil)
)

// item is a single cache entry. A zero expiration never expires.
type item struct {
	value      []byte
	expiration time.Time
}

func (it item) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// MemoryCache is an in-process TTL cache. A background goroutine removes
// expired entries every gcInterval until Close is called.
type MemoryCache struct {
	mu        sync.RWMutex
	items     map[string]item
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

const gcInterval = time.Minute

// NewMemoryCache creates a MemoryCache and starts its collector.
func NewMemoryCache() *MemoryCache {
	return newMemoryCache(gcInterval)
}

func newMemoryCache(interval time.Duration) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]item),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.gc(interval)
	return c
}

// Get returns a copy of the value stored under key. Missing and expired keys
// return receiptprefs.ErrNotFound.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, exists := c.items[key]
	if !exists || it.expired(time.Now()) {
		return nil, receiptprefs.ErrNotFound
	}

	return append([]byte(nil), it.value...), nil
}

// Set stores value under key. A ttl of zero or less never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration time.Time
	if ttl > 0 {
		expiration = time.Now().Add(ttl)
	}

	c.items[key] = item{
		value:      append([]byte(nil), value...),
		expiration: expiration,
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the collector and drops all entries. It is idempotent.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done

		c.mu.Lock()
		c.items = make(map[string]item)
		c.mu.Unlock()
	})
	return nil
}

func (c *MemoryCache) gc(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
}
