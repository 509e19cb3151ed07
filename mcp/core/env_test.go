package core

import (
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/ntpmcp/ntpmcp/cache"
	"github.com/ntpmcp/ntpmcp/libs/log"
	"github.com/ntpmcp/ntpmcp/ntpclient"
	"github.com/ntpmcp/ntpmcp/ratelimit"
	"github.com/ntpmcp/ntpmcp/whitelist"
)

// fixedTime is the instant every fake component agrees on.
var fixedTime = time.Date(2025, 8, 29, 14, 30, 25, 0, time.UTC)

type fakeClock struct {
	mtx sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.now = c.now.Add(d)
}

// fakeQuerier answers every query with a fixed result.
type fakeQuerier struct {
	mtx   sync.Mutex
	calls int
	ts    time.Time
	err   error
}

func (q *fakeQuerier) QueryTime(string, time.Duration) (time.Time, error) {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	q.calls++
	if q.err != nil {
		return time.Time{}, q.err
	}
	return q.ts, nil
}

func (q *fakeQuerier) callCount() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	return q.calls
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// testEnv returns an Environment wired entirely to fakes, plus the clock
// that drives the cache and the rate window.
func testEnv(t *testing.T, server string, querier ntpclient.Querier) (*Environment, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: fixedTime}
	logger := log.NewNopLogger()
	client := ntpclient.NewClient(logger,
		ntpclient.WithQuerier(querier),
		ntpclient.WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	)
	return &Environment{
		Logger:     logger,
		Validator:  whitelist.NewDefault(),
		Client:     client,
		Fallback:   ntpclient.NewFallback(logger, clock),
		Cache:      cache.NewTTL(30*time.Second, clock),
		Limiter:    ratelimit.NewSlidingWindow(60, time.Minute, clock),
		Metrics:    NopMetrics(),
		ServerName: server,
		Location:   time.UTC,
	}, clock
}
