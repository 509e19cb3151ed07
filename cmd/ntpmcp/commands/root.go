package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/ntpmcp/ntpmcp/config"
	"github.com/ntpmcp/ntpmcp/libs/cli"
	mcpflags "github.com/ntpmcp/ntpmcp/libs/cli/flags"
	"github.com/ntpmcp/ntpmcp/libs/log"
)

var (
	config = cfg.DefaultConfig()
	// Logs go to stderr: stdout belongs to the MCP wire when serving over
	// stdio.
	logger = log.NewLogger(os.Stderr)
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", config.LogLevel, "log level")
}

// ConfigHome returns the root directory: $NTPMCPHOME if set, the --home
// flag otherwise.
func ConfigHome(cmd *cobra.Command) (string, error) {
	var home string
	if os.Getenv("NTPMCPHOME") != "" {
		home = os.Getenv("NTPMCPHOME")
	} else {
		var err error
		// Default: $HOME/.ntpmcp
		home, err = cmd.Flags().GetString(cli.HomeFlag)
		if err != nil {
			return "", err
		}
	}

	return home, nil
}

// ParseConfig retrieves the default environment configuration,
// sets up the ntpmcp root and ensures that the root exists.
func ParseConfig(cmd *cobra.Command) (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}

	home, err := ConfigHome(cmd)
	if err != nil {
		return nil, err
	}
	conf.SetRoot(home)
	cfg.EnsureRoot(home)

	// NTP_SERVER and TZ are the documented client-facing knobs; they win
	// over the config file.
	if server := os.Getenv("NTP_SERVER"); server != "" {
		conf.NTP.Server = server
	}
	if tz := os.Getenv("TZ"); tz != "" {
		conf.NTP.Timezone = tz
	}

	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %v", err)
	}
	return conf, nil
}

// RootCmd is the root command for ntpmcp.
var RootCmd = &cobra.Command{
	Use:   "ntpmcp",
	Short: "MCP server exposing NTP-sourced current time behind a server whitelist",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		config, err = ParseConfig(cmd)
		if err != nil {
			return err
		}

		if config.LogFormat == cfg.LogFormatJSON {
			logger = log.NewJSONLogger(os.Stderr)
		} else if !config.LogColors {
			logger = log.NewLoggerWithColor(os.Stderr, false)
		}

		logger, err = mcpflags.ParseLogLevel(config.LogLevel, logger, cfg.DefaultLogLevel)
		if err != nil {
			return err
		}

		return nil
	},
}
