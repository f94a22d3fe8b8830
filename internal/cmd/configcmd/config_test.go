package configcmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot mirrors the persistent flags the real root command provides.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "flattag"}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().Bool("no-color", false, "")
	root.AddCommand(NewCmdConfig())
	return root
}

func TestNewCmdConfig(t *testing.T) {
	cmd := NewCmdConfig()

	assert.Equal(t, "config", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "init", "clear", "path"}, names)
}

func TestConfigPath_Flag(t *testing.T) {
	root := newTestRoot()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "path", "--config", "/etc/flattag.yml"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "/etc/flattag.yml\n", buf.String())
}

func TestConfigPath_Default(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	root := newTestRoot()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"config", "path"})

	require.NoError(t, root.Execute())
	assert.Equal(t, dir+"/flattag/config.yml\n", buf.String())
}
