package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c, err := NewTTLCache[string](2, time.Minute)
	require.NoError(t, err)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", "uno")
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "uno", got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired entries are dropped")
}

func TestTTLCacheEvictionAndPurge(t *testing.T) {
	c, err := NewTTLCache[int](2, time.Minute)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	_, ok := c.Get("a")
	assert.False(t, ok, "least recently used entry is evicted")

	c.Purge()
	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestTTLCacheDisabled(t *testing.T) {
	c, err := NewTTLCache[int](4, 0)
	require.NoError(t, err)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheSetIfGeneration(t *testing.T) {
	c, err := NewTTLCache[string](4, time.Minute)
	require.NoError(t, err)

	gen := c.Generation()
	assert.True(t, c.SetIfGeneration("a", "uno", gen))
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "uno", got)

	// value loaded before a purge must not be cached after it
	gen = c.Generation()
	c.Purge()
	assert.False(t, c.SetIfGeneration("a", "viejo", gen))
	_, ok = c.Get("a")
	assert.False(t, ok)

	assert.True(t, c.SetIfGeneration("a", "nuevo", c.Generation()))
	got, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "nuevo", got)
}
