package main

import (
	"os"
	"path/filepath"

	cmd "github.com/ntpmcp/ntpmcp/cmd/ntpmcp/commands"
	cfg "github.com/ntpmcp/ntpmcp/config"
	"github.com/ntpmcp/ntpmcp/libs/cli"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.AddCommand(
		cmd.InitFilesCmd,
		cmd.ListServersCmd,
		cmd.VersionCmd,
		cmd.NewRunServerCmd(),
		cli.NewCompletionCmd(rootCmd, true),
	)

	executor := cli.PrepareBaseCmd(rootCmd, "NTPMCP", os.ExpandEnv(filepath.Join("$HOME", cfg.DefaultNTPMCPDir)))
	if err := executor.Execute(); err != nil {
		panic(err)
	}
}
