package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ntpmcp/ntpmcp/mcp/core"
	"github.com/ntpmcp/ntpmcp/whitelist"
)

// ListServersCmd prints the approved NTP server whitelist without starting
// a server. Output matches the list_approved_servers tool byte for byte.
var ListServersCmd = &cobra.Command{
	Use:   "list-servers",
	Short: "List the approved NTP servers",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), core.FormatApprovedServers(whitelist.DefaultApproved()))
	},
}
