package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnolang/eslex/search"
)

var forceInit bool

// initCmd: eslex init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the built-in rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfigurationFile(cfgFile, forceInit); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, force bool) error {
	if configurationPath == "" {
		configurationPath = search.DefaultConfigFile
	}

	if !force {
		_, err := os.Stat(configurationPath)
		if err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configurationPath)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return search.WriteConfig(configurationPath, search.DefaultConfig())
}
