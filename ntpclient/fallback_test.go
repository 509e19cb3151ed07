package ntpclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntpmcp/ntpmcp/libs/log"
)

type fixedSource struct {
	ts time.Time
}

func (s fixedSource) Now() time.Time { return s.ts }

func TestFallbackReading(t *testing.T) {
	ts := time.Date(2025, 8, 29, 14, 30, 25, 0, time.UTC)
	f := NewFallback(log.NewNopLogger(), fixedSource{ts})

	reading := f.Reading("NTP timeout after 5s")
	require.False(t, reading.FromNTP())
	assert.Equal(t, ts, reading.Timestamp)
	assert.Equal(t, "NTP timeout after 5s", reading.Cause)
}
