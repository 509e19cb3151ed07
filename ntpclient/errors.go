package ntpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrProtocol reports a completed exchange that produced an unusable
// answer: a malformed packet, a kiss-of-death code, or a failed sanity
// check.
type ErrProtocol struct {
	Source error
}

func (e ErrProtocol) Error() string {
	return fmt.Sprintf("ntp protocol error: %v", e.Source)
}

func (e ErrProtocol) Unwrap() error {
	return e.Source
}

// ErrExhausted reports that every attempt against a server failed. Last
// holds the error from the final attempt.
type ErrExhausted struct {
	Server   string
	Attempts int
	Last     error
}

func (e ErrExhausted) Error() string {
	return fmt.Sprintf("ntp query to %s failed after %d attempts: %v", e.Server, e.Attempts, e.Last)
}

func (e ErrExhausted) Unwrap() error {
	return e.Last
}

// Cause renders err as the reason string embedded in local fallback
// responses. The wording distinguishes protocol faults, timeouts, and
// transport errors; anything else is reported as unexpected.
func Cause(err error, timeout time.Duration) string {
	var exhausted ErrExhausted
	if errors.As(err, &exhausted) && exhausted.Last != nil {
		err = exhausted.Last
	}
	var protoErr ErrProtocol
	var netErr net.Error
	switch {
	case errors.As(err, &protoErr):
		return fmt.Sprintf("NTP protocol error: %v", protoErr.Source)
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Sprintf("NTP timeout after %ds", int(timeout.Seconds()))
	case errors.As(err, &netErr):
		return fmt.Sprintf("Network error: %v", err)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
