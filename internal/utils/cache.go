package utils

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem pairs a cached value with its expiry.
type CacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// TTLCache is an LRU cache whose entries also expire after ttl.
// A zero ttl disables caching entirely. Every Purge starts a new generation;
// SetIfGeneration drops values loaded before the latest purge.
type TTLCache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
	ttl      time.Duration
	now      func() time.Time
	gen      atomic.Uint64
}

func NewTTLCache[V any](size int, ttl time.Duration) (*TTLCache[V], error) {
	if size <= 0 {
		size = 1
	}
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[V]{lruCache: l, ttl: ttl, now: time.Now}, nil
}

func (c *TTLCache[V]) Set(key string, data V) {
	if c.ttl <= 0 {
		return
	}
	c.lruCache.Add(key, CacheItem[V]{
		Data:      data,
		ExpiresAt: c.now().Add(c.ttl),
	})
}

// Get reports false for missing or expired keys.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.lruCache.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return zero, false
	}
	return val.Data, true
}

// Generation is read before loading a value that will be passed to
// SetIfGeneration.
func (c *TTLCache[V]) Generation() uint64 {
	return c.gen.Load()
}

// SetIfGeneration stores data only when no Purge happened since gen was read.
func (c *TTLCache[V]) SetIfGeneration(key string, data V, gen uint64) bool {
	if c.gen.Load() != gen {
		return false
	}
	c.Set(key, data)
	// a purge racing with the Add above wins
	if c.gen.Load() != gen {
		c.lruCache.Remove(key)
		return false
	}
	return true
}

func (c *TTLCache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}

// Purge drops every entry.
func (c *TTLCache[V]) Purge() {
	c.gen.Add(1)
	c.lruCache.Purge()
}
