package ntpclient

import (
	"github.com/ntpmcp/ntpmcp/libs/log"
	"github.com/ntpmcp/ntpmcp/types"
	mcptime "github.com/ntpmcp/ntpmcp/types/time"
)

// Fallback produces local clock readings once NTP acquisition has been
// given up on.
type Fallback struct {
	logger log.Logger
	clock  mcptime.Source
}

// NewFallback returns a Fallback reading from clock.
func NewFallback(logger log.Logger, clock mcptime.Source) *Fallback {
	return &Fallback{logger: logger, clock: clock}
}

// Reading returns the local system time as a reading carrying cause in its
// Source line.
func (f *Fallback) Reading(cause string) types.TimeReading {
	f.logger.Warn("falling back to local system time", "cause", cause)
	return types.LocalReading(f.clock.Now(), cause)
}
