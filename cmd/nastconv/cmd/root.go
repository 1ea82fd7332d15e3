package cmd

import (
	"fmt"
	"os"

	"nastconv/cli"
	"nastconv/config"
	"nastconv/log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configuredHomeDir string
	cfg               *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "nastconv",
	Short:         "Converts NaSt2D binary dumps into JSON grid fixtures.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configuredHomeDir = cli.GetHomeDir(cmd)
		if cmd.CalledAs() == "init" || cmd.CalledAs() == "version" {
			return nil
		}
		c, err := config.ReadConfigFile(configuredHomeDir)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed(cli.FlagLogLevel) {
			c.LogLevel, _ = cmd.Flags().GetString(cli.FlagLogLevel)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrap(err, "invalid config")
		}
		lvl, _ := log.NewLevel(c.LogLevel)
		log.SetLevel(lvl)
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, config.DefaultHomeDir, "Home directory for the config file and fixture cache.")
	rootCmd.PersistentFlags().String(cli.FlagLogLevel, "", "Log level, overriding log_level from the config file.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
