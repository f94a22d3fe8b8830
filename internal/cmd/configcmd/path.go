package configcmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/flattag/internal/view"
)

// NewCmdPath creates the config path command.
func NewCmdPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Example: `  # Edit the config file
  $EDITOR "$(flattag config path)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(cmd.OutOrStdout(), configPath(cmd))
		},
	}
}

func runPath(w io.Writer, path string) error {
	r := view.NewRenderer(view.FormatPlain, true)
	r.SetWriter(w)
	r.RenderText(path)
	return nil
}
