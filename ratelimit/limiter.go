// Package ratelimit bounds how often the time tool may be invoked.
package ratelimit

import (
	"time"

	mcpsync "github.com/ntpmcp/ntpmcp/libs/sync"
	mcptime "github.com/ntpmcp/ntpmcp/types/time"
)

// SlidingWindow admits at most limit attempts per window. Every attempt is
// recorded, admitted or not, so a client hammering past the limit keeps
// pushing its own window forward. It is safe for concurrent use.
type SlidingWindow struct {
	window time.Duration
	limit  int
	clock  mcptime.Source

	mtx      mcpsync.Mutex
	arrivals []time.Time
}

// NewSlidingWindow returns a limiter admitting limit attempts per window,
// reading the clock from source.
func NewSlidingWindow(limit int, window time.Duration, clock mcptime.Source) *SlidingWindow {
	return &SlidingWindow{
		window:   window,
		limit:    limit,
		clock:    clock,
		arrivals: make([]time.Time, 0, limit),
	}
}

// Admit records an attempt and reports whether it falls within the limit.
func (l *SlidingWindow) Admit() bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	now := l.clock.Now()
	cutoff := now.Add(-l.window)
	keep := l.arrivals[:0]
	for _, t := range l.arrivals {
		// an arrival exactly one window old has aged out
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}
	l.arrivals = keep

	admitted := len(l.arrivals) < l.limit
	l.arrivals = append(l.arrivals, now)
	return admitted
}
