// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// shell describes one supported shell.
type shell struct {
	name     string
	short    string
	install  string
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		short: "Generate bash completion script",
		install: `  # Load in current session
  source <(flattag completion bash)

  # Install permanently (Linux)
  flattag completion bash | sudo tee /etc/bash_completion.d/flattag > /dev/null

  # Install permanently (macOS with Homebrew)
  flattag completion bash > $(brew --prefix)/etc/bash_completion.d/flattag`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name:  "zsh",
		short: "Generate zsh completion script",
		install: `  # Load in current session
  source <(flattag completion zsh)

  # Install permanently
  mkdir -p ~/.zsh/completions
  flattag completion zsh > ~/.zsh/completions/_flattag

  # Then add to ~/.zshrc:
  # fpath=(~/.zsh/completions $fpath)
  # autoload -Uz compinit && compinit`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:  "fish",
		short: "Generate fish completion script",
		install: `  # Load in current session
  flattag completion fish | source

  # Install permanently
  flattag completion fish > ~/.config/fish/completions/flattag.fish`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		short: "Generate PowerShell completion script",
		install: `  # Load in current session
  flattag completion powershell | Out-String | Invoke-Expression

  # Install permanently (add to $PROFILE)
  flattag completion powershell >> $PROFILE`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flattag.

These scripts enable tab-completion for subcommands, flags and flag values
such as --encoding. See each sub-command's help for installation.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 sh.short,
		Long:                  fmt.Sprintf("%s for flattag.", sh.short),
		Example:               sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.generate(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// FixedValues returns a flag completion function that offers values and
// suppresses file completion.
func FixedValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
