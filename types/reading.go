package types

import (
	"fmt"
	"strings"
	"time"
)

// CachedMarker is appended to a rendered reading when it is served from the
// response cache instead of a fresh acquisition.
const CachedMarker = "\n(cached)"

// TimeReading is a single acquisition of the current time. It either comes
// from an NTP server or, when every NTP attempt failed, from the local
// system clock together with the failure cause.
type TimeReading struct {
	// Timestamp is the acquired instant, canonical UTC.
	Timestamp time.Time

	// Server is the NTP server that answered. Empty for local readings.
	Server string

	// Cause describes why NTP was unavailable. Empty for NTP readings.
	Cause string
}

// NTPReading returns a reading produced by a successful NTP round trip.
func NTPReading(ts time.Time, server string) TimeReading {
	return TimeReading{Timestamp: ts, Server: server}
}

// LocalReading returns a reading taken from the local clock after NTP
// acquisition failed, with a human-readable cause.
func LocalReading(ts time.Time, cause string) TimeReading {
	return TimeReading{Timestamp: ts, Cause: cause}
}

// FromNTP reports whether the reading came from an NTP server.
func (r TimeReading) FromNTP() bool {
	return r.Server != ""
}

// Render formats the reading using the fixed line contract:
//
//	Date:2025-08-29
//	Time:14:30:25
//	Timezone:UTC
//	NTP Server:time.cloudflare.com
//	Source:NTP
//
// Local readings drop the "NTP Server" line and carry the cause inside the
// "Source" line instead. Date and time are rendered in loc; the timezone
// field shows the zone abbreviation in effect at the instant.
// Field order and label spelling are part of the external contract.
func (r TimeReading) Render(loc *time.Location) string {
	local := r.Timestamp.In(loc)

	var b strings.Builder
	fmt.Fprintf(&b, "Date:%s\n", local.Format("2006-01-02"))
	fmt.Fprintf(&b, "Time:%s\n", local.Format("15:04:05"))
	fmt.Fprintf(&b, "Timezone:%s\n", local.Format("MST"))
	if r.FromNTP() {
		fmt.Fprintf(&b, "NTP Server:%s\n", r.Server)
		b.WriteString("Source:NTP")
	} else {
		fmt.Fprintf(&b, "Source:LOCAL SYSTEM (NTP unavailable: %s)", r.Cause)
	}
	return b.String()
}
