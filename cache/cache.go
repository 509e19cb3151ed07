// Package cache holds the most recent successful time response so that
// bursts of requests inside the freshness window reuse one NTP round trip.
package cache

import (
	"time"

	mcpsync "github.com/ntpmcp/ntpmcp/libs/sync"
	"github.com/ntpmcp/ntpmcp/types"
	mcptime "github.com/ntpmcp/ntpmcp/types/time"
)

// Entry is one cached response: the reading, its rendered payload, and
// when it was stored.
type Entry struct {
	Reading   types.TimeReading
	Payload   string
	CreatedAt time.Time
}

// ResponseCache stores at most one response.
type ResponseCache interface {
	// Get returns the stored entry if one exists and is still fresh.
	Get() (Entry, bool)

	// Put stores a response, replacing any previous one.
	Put(reading types.TimeReading, payload string)

	// Reset drops the stored entry.
	Reset()
}

// TTLCache is a single-slot ResponseCache whose entry expires once its age
// reaches the TTL. It is safe for concurrent use.
type TTLCache struct {
	ttl   time.Duration
	clock mcptime.Source

	mtx   mcpsync.Mutex
	entry Entry
	set   bool
}

var _ ResponseCache = (*TTLCache)(nil)

// NewTTL returns a TTLCache with the given freshness window, reading the
// clock from source.
func NewTTL(ttl time.Duration, clock mcptime.Source) *TTLCache {
	return &TTLCache{ttl: ttl, clock: clock}
}

func (c *TTLCache) Get() (Entry, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if !c.set {
		return Entry{}, false
	}
	// an entry exactly at the TTL is already stale
	if c.clock.Now().Sub(c.entry.CreatedAt) >= c.ttl {
		return Entry{}, false
	}
	return c.entry, true
}

func (c *TTLCache) Put(reading types.TimeReading, payload string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entry = Entry{Reading: reading, Payload: payload, CreatedAt: c.clock.Now()}
	c.set = true
}

func (c *TTLCache) Reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entry = Entry{}
	c.set = false
}

// NopCache is a ResponseCache that stores nothing, used when caching is
// disabled.
type NopCache struct{}

var _ ResponseCache = NopCache{}

func (NopCache) Get() (Entry, bool) { return Entry{}, false }

func (NopCache) Put(types.TimeReading, string) {}

func (NopCache) Reset() {}
