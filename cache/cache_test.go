package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntpmcp/ntpmcp/types"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 29, 14, 30, 0, 0, time.UTC)}
}

func TestTTLCacheHitWhileFresh(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(30*time.Second, clock)

	reading := types.NTPReading(clock.Now(), "pool.ntp.org")
	c.Put(reading, "payload")

	clock.advance(29 * time.Second)
	entry, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "payload", entry.Payload)
	assert.Equal(t, reading, entry.Reading)
}

func TestTTLCacheExpiresAtTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(30*time.Second, clock)
	c.Put(types.NTPReading(clock.Now(), "pool.ntp.org"), "payload")

	clock.advance(30 * time.Second)
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestTTLCacheEmpty(t *testing.T) {
	c := NewTTL(30*time.Second, newFakeClock())
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestTTLCacheOverwrite(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(30*time.Second, clock)
	c.Put(types.NTPReading(clock.Now(), "pool.ntp.org"), "first")

	clock.advance(10 * time.Second)
	c.Put(types.NTPReading(clock.Now(), "time.google.com"), "second")

	// the clock for expiry restarts at the second put
	clock.advance(25 * time.Second)
	entry, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "second", entry.Payload)
	assert.Equal(t, "time.google.com", entry.Reading.Server)
}

func TestTTLCacheReset(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL(30*time.Second, clock)
	c.Put(types.NTPReading(clock.Now(), "pool.ntp.org"), "payload")

	c.Reset()
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestNopCache(t *testing.T) {
	c := NopCache{}
	c.Put(types.NTPReading(time.Now(), "pool.ntp.org"), "payload")
	_, ok := c.Get()
	assert.False(t, ok)
}
