package time

import (
	"time"
)

// Canonical returns UTC time with no monotonic component.
// Stripping the monotonic component is for time equality.
func Canonical(t time.Time) time.Time {
	return t.Round(0).UTC()
}

// Source is an interface that defines a way to fetch the current time.
type Source interface {
	Now() time.Time
}

// Until returns the duration until t.
// It is shorthand for t.Sub(time.Now()).
func Until(t time.Time) time.Duration {
	return t.Sub(Now())
}

// Since returns the time elapsed since t.
// It is shorthand for time.Now().Sub(t).
func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}

// DefaultSource implements the Source interface using the system clock
// provided by the standard library.
type DefaultSource struct{}

func (DefaultSource) Now() time.Time {
	return Now()
}
