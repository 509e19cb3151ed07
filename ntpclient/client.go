// Package ntpclient acquires the current time from NTP servers with
// bounded retries, and falls back to the local clock when every attempt
// fails.
package ntpclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/ntpmcp/ntpmcp/libs/log"
	"github.com/ntpmcp/ntpmcp/types"
	mcptime "github.com/ntpmcp/ntpmcp/types/time"
)

const (
	// DefaultTimeout bounds a single NTP exchange.
	DefaultTimeout = 5 * time.Second

	// DefaultAttempts is how many times a query is tried before giving
	// up.
	DefaultAttempts = 3
)

// DefaultBackOff returns the wait schedule between attempts: exponential,
// starting at one second and capped at ten.
func DefaultBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}

// Client acquires the current time from NTP servers, retrying transient
// failures with backoff. It is safe for concurrent use.
type Client struct {
	logger   log.Logger
	querier  Querier
	timeout  time.Duration
	attempts int

	newBackOff func() backoff.BackOff
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithAttempts sets the number of attempts per query.
func WithAttempts(n int) Option {
	return func(c *Client) { c.attempts = n }
}

// WithBackOff sets the factory producing the per-query wait schedule.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = f }
}

// WithQuerier replaces the SNTP querier.
func WithQuerier(q Querier) Option {
	return func(c *Client) { c.querier = q }
}

// NewClient returns a Client with the default querier, timeout, attempt
// count and backoff, then applies opts.
func NewClient(logger log.Logger, opts ...Option) *Client {
	c := &Client{
		logger:     logger,
		querier:    NewQuerier(),
		timeout:    DefaultTimeout,
		attempts:   DefaultAttempts,
		newBackOff: DefaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-exchange timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Query fetches the current time from server. Failed attempts are retried
// with backoff; once every attempt has failed the returned error is
// ErrExhausted. A canceled ctx aborts the remaining attempts and discards
// any late answer.
func (c *Client) Query(ctx context.Context, server string) (types.TimeReading, error) {
	bo := c.newBackOff()
	var last error
	attempt := 1
	for {
		ts, err := c.queryOnce(ctx, server)
		if err == nil {
			c.logger.Info("NTP time retrieved", "server", server, "time", ts)
			return types.NTPReading(mcptime.Canonical(ts), server), nil
		}
		if ctx.Err() != nil {
			return types.TimeReading{}, ctx.Err()
		}
		last = err
		c.logger.Debug("NTP query attempt failed", "server", server, "attempt", attempt, "err", err)
		if attempt >= c.attempts {
			break
		}
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return types.TimeReading{}, ctx.Err()
		}
		attempt++
	}
	return types.TimeReading{}, ErrExhausted{Server: server, Attempts: attempt, Last: last}
}

// Cause renders err as the reason embedded in fallback responses, using
// the client's configured timeout for the timeout wording.
func (c *Client) Cause(err error) string {
	return Cause(err, c.timeout)
}

func (c *Client) queryOnce(ctx context.Context, server string) (time.Time, error) {
	type result struct {
		ts  time.Time
		err error
	}
	// buffered so an abandoned attempt cannot leak its goroutine
	ch := make(chan result, 1)
	go func() {
		ts, err := c.querier.QueryTime(server, c.timeout)
		ch <- result{ts, err}
	}()
	select {
	case r := <-ch:
		return r.ts, r.err
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}
