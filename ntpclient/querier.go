package ntpclient

import (
	"errors"
	"net"
	"time"

	"github.com/beevik/ntp"
)

// Querier performs one NTP exchange with one server. Implementations
// report transport failures as net.Error and anything wrong with the
// exchange itself as ErrProtocol.
type Querier interface {
	QueryTime(server string, timeout time.Duration) (time.Time, error)
}

// NewQuerier returns the production Querier, speaking SNTP over UDP.
func NewQuerier() Querier {
	return sntpQuerier{}
}

type sntpQuerier struct{}

func (sntpQuerier) QueryTime(server string, timeout time.Duration) (time.Time, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			return time.Time{}, err
		}
		return time.Time{}, ErrProtocol{Source: err}
	}
	if err := resp.Validate(); err != nil {
		return time.Time{}, ErrProtocol{Source: err}
	}
	// Time is the server's transmit timestamp, the closest analogue of
	// "current time at the server".
	return resp.Time, nil
}
