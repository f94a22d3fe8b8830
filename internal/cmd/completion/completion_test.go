package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestRootCmd creates a minimal root command for testing.
func createTestRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flattag",
		Short: "Test CLI",
		Run:   func(*cobra.Command, []string) {},
	}
	root.Flags().String("encoding", "utf-8", "")
	_ = root.RegisterFlagCompletionFunc("encoding", FixedValues("utf-8", "shift_jis"))
	root.AddCommand(NewCmdCompletion())
	return root
}

func TestNewCmdCompletion(t *testing.T) {
	cmd := NewCmdCompletion()

	assert.Equal(t, "completion", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	// One subcommand per shell
	assert.Len(t, cmd.Commands(), 4)
	for _, sub := range cmd.Commands() {
		assert.Contains(t, sub.Example, "flattag completion "+sub.Name())
	}
}

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell  string
		marker string
	}{
		{"bash", "bash completion"},
		{"zsh", "compdef"},
		{"fish", "complete -c flattag"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			root := createTestRootCmd()

			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetArgs([]string{"completion", tt.shell})

			err := root.Execute()
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.marker)
		})
	}
}

func TestCompletionRejectsExtraArgs(t *testing.T) {
	for _, sh := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(sh, func(t *testing.T) {
			root := createTestRootCmd()
			root.SetOut(new(bytes.Buffer))
			root.SetErr(new(bytes.Buffer))
			root.SetArgs([]string{"completion", sh, "unexpected-arg"})

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown command")
		})
	}
}

func TestFixedValues(t *testing.T) {
	root := createTestRootCmd()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{cobra.ShellCompRequestCmd, "--encoding", ""})

	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "utf-8", lines[0])
	assert.Equal(t, "shift_jis", lines[1])
	assert.Equal(t, ":4", lines[2])
}
