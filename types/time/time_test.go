package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	local := time.Date(2024, 3, 15, 9, 30, 0, 0, loc)
	got := Canonical(local)

	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestDefaultSourceTracksSystemClock(t *testing.T) {
	src := DefaultSource{}
	before := time.Now().Add(-time.Second)
	after := time.Now().Add(time.Second)

	now := src.Now()
	assert.True(t, now.After(before))
	assert.True(t, now.Before(after))
	assert.Equal(t, time.UTC, now.Location())
}

func TestSinceUntil(t *testing.T) {
	past := Now().Add(-time.Minute)
	assert.Greater(t, Since(past), 50*time.Second)

	future := Now().Add(time.Minute)
	assert.Greater(t, Until(future), 50*time.Second)
}
