package configcmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/flattag/internal/config"
	"github.com/open-cli-collective/flattag/internal/view"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the flattag configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  flattag config clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func runClear(w io.Writer, path string, noColor bool) error {
	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(w)

	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	if os.IsNotExist(err) {
		r.Success("No config file to remove")
	} else {
		r.Success(fmt.Sprintf("Configuration cleared from %s", path))
	}

	var activeVars []string
	for _, v := range config.EnvVars() {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		dim := color.New(color.Faint)
		_, _ = dim.Fprintf(w, "\nNote: Environment variables will still be used: %s\n", strings.Join(activeVars, ", "))
	}

	return nil
}
