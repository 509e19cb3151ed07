package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ntpmcp/ntpmcp/version"
)

var verbose bool

// VersionCmd ...
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(_ *cobra.Command, _ []string) {
		mcpVersion := version.SemVer
		if version.GitCommitHash != "" {
			mcpVersion += "+" + version.GitCommitHash
		}

		if verbose {
			values, err := json.MarshalIndent(struct {
				NTPMCP      string `json:"ntpmcp"`
				MCPProtocol string `json:"mcp_protocol"`
			}{
				NTPMCP:      mcpVersion,
				MCPProtocol: version.MCPProtocol,
			}, "", "  ")
			if err != nil {
				panic(fmt.Sprintf("failed to marshal version info: %v", err))
			}
			fmt.Println(string(values))
		} else {
			fmt.Println(mcpVersion)
		}
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show protocol version as well")
}
