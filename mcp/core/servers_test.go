package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listNote = "\n\nNote: Untrusted domains and direct IP addresses are blocked for security."

func TestListApprovedServers(t *testing.T) {
	env, _ := testEnv(t, "pool.ntp.org", &fakeQuerier{ts: fixedTime})

	payload, err := env.ListApprovedServers(context.Background())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(payload, "Approved NTP Servers:\n• pool.ntp.org\n"))
	require.True(t, strings.HasSuffix(payload, listNote))

	body := strings.TrimPrefix(payload, "Approved NTP Servers:\n")
	body = strings.TrimSuffix(body, listNote)
	entries := strings.Split(body, "\n")
	assert.Len(t, entries, 25)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e, "• "), "entry %q must be bulleted", e)
	}
}

func TestListApprovedServersBypassesRateLimit(t *testing.T) {
	env, _ := testEnv(t, "pool.ntp.org", &fakeQuerier{ts: fixedTime})

	// exhaust the admission window
	for i := 0; i < 61; i++ {
		_, err := env.GetCurrentTime(context.Background())
		require.NoError(t, err)
	}

	payload, err := env.CallTool(context.Background(), ToolListApprovedServers)
	require.NoError(t, err)
	assert.Contains(t, payload, "Approved NTP Servers:")
}

func TestFormatApprovedServers(t *testing.T) {
	got := FormatApprovedServers([]string{"a.example", "b.example"})
	want := "Approved NTP Servers:\n• a.example\n• b.example" + listNote
	assert.Equal(t, want, got)
}
