package version

const (
	// SemVer is used as the fallback version of ntpmcp
	// when not using git describe. It uses semantic versioning format.
	SemVer = "1.0.0"

	// MCPProtocol is the Model Context Protocol revision the server
	// negotiates during initialize.
	MCPProtocol = "2024-11-05"
)

// GitCommitHash uses git rev-parse HEAD to find commit hash which is helpful
// for the engineering team when working with the ntpmcp binary. See Makefile.
var GitCommitHash = ""
