// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/flattag/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage flattag configuration",
		Long: `Commands for viewing, creating, and clearing the flattag configuration.

The config file holds default values for the conversion flags. Environment
variables (FLATTAG_DELIMITER, FLATTAG_ATTRIBUTE_MODE, ...) override the
file, and flags override both.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdInit())
	cmd.AddCommand(NewCmdClear())
	cmd.AddCommand(NewCmdPath())

	return cmd
}

// configPath returns the --config value or the default location.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return config.ResolvePath(path)
}
