package commands

import (
	"github.com/spf13/cobra"

	cfg "github.com/ntpmcp/ntpmcp/config"
	mcpos "github.com/ntpmcp/ntpmcp/internal/os"
)

// InitFilesCmd initializes a fresh ntpmcp home directory.
var InitFilesCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ntpmcp home directory",
	RunE:  initFiles,
}

func initFiles(*cobra.Command, []string) error {
	return initFilesWithConfig(config)
}

func initFilesWithConfig(config *cfg.Config) error {
	configFilePath := config.ConfigFilePath()
	if mcpos.FileExists(configFilePath) {
		logger.Info("Found config file", "path", configFilePath)
		return nil
	}
	cfg.WriteConfigFile(configFilePath, config)
	logger.Info("Generated config file", "path", configFilePath)
	return nil
}
