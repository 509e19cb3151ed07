package core

import (
	"context"
	"strings"
)

// ListApprovedServers handles the list_approved_servers tool. It is
// neither rate limited nor cached.
func (env *Environment) ListApprovedServers(context.Context) (string, error) {
	return FormatApprovedServers(env.Validator.Approved()), nil
}

// FormatApprovedServers renders the whitelist as the fixed bulleted text
// returned to the caller.
func FormatApprovedServers(servers []string) string {
	lines := make([]string, len(servers))
	for i, s := range servers {
		lines[i] = "• " + s
	}
	return "Approved NTP Servers:\n" + strings.Join(lines, "\n") +
		"\n\nNote: Untrusted domains and direct IP addresses are blocked for security."
}
