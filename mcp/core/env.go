// Package core implements the tool handlers behind the MCP surface: the
// rate-limited, cached, whitelist-guarded time acquisition pipeline and
// the whitelist listing.
package core

import (
	"time"

	"github.com/ntpmcp/ntpmcp/cache"
	"github.com/ntpmcp/ntpmcp/libs/log"
	mcpsync "github.com/ntpmcp/ntpmcp/libs/sync"
	"github.com/ntpmcp/ntpmcp/ntpclient"
	"github.com/ntpmcp/ntpmcp/ratelimit"
	"github.com/ntpmcp/ntpmcp/whitelist"
)

// Environment contains the objects and interfaces used to serve the tool
// calls. A single instance is created at startup and shared by every
// request; all fields must be set before the first call.
type Environment struct {
	Logger log.Logger

	// validation and acquisition
	Validator *whitelist.Validator
	Client    *ntpclient.Client
	Fallback  *ntpclient.Fallback

	// shared mutable state, each safe for concurrent use on its own
	Cache   cache.ResponseCache
	Limiter *ratelimit.SlidingWindow

	Metrics *Metrics

	// fixed at process start
	ServerName string
	Location   *time.Location

	// refreshMtx serializes the cache-check-then-refresh sequence so a
	// concurrent burst performs exactly one network query.
	refreshMtx mcpsync.Mutex
}
