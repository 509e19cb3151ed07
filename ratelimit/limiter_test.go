package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	mcptime "github.com/ntpmcp/ntpmcp/types/time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 29, 14, 30, 0, 0, time.UTC)}
}

func TestAdmitUpToLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewSlidingWindow(60, time.Minute, clock)

	for i := 0; i < 60; i++ {
		assert.True(t, l.Admit(), "attempt %d should be admitted", i+1)
	}
	assert.False(t, l.Admit(), "attempt 61 should be rejected")
}

func TestWindowSlides(t *testing.T) {
	clock := newFakeClock()
	l := NewSlidingWindow(60, time.Minute, clock)

	for i := 0; i < 60; i++ {
		assert.True(t, l.Admit())
	}
	assert.False(t, l.Admit())

	// the rejected attempt above was also recorded, so one minute after it
	// everything has aged out
	clock.advance(time.Minute)
	assert.True(t, l.Admit())
}

func TestRejectedAttemptsExtendWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewSlidingWindow(1, time.Minute, clock)

	assert.True(t, l.Admit())

	clock.advance(10 * time.Second)
	assert.False(t, l.Admit())

	// 65s after the first attempt it has aged out, but the rejected
	// attempt at t=10s is still inside the window
	clock.advance(55 * time.Second)
	assert.False(t, l.Admit())

	// once every recorded attempt is a minute old the client is admitted
	clock.advance(2 * time.Minute)
	assert.True(t, l.Admit())
}

func TestAdmitExactWindowBoundary(t *testing.T) {
	clock := newFakeClock()
	l := NewSlidingWindow(1, time.Minute, clock)

	assert.True(t, l.Admit())

	// an arrival exactly one window old no longer counts
	clock.advance(time.Minute)
	assert.True(t, l.Admit())
}

func TestAdmitConcurrent(t *testing.T) {
	l := NewSlidingWindow(60, time.Minute, mcptime.DefaultSource{})

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Admit() {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 60, admitted.Load())
}
