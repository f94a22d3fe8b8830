package main

import (
	"os"

	"github.com/open-cli-collective/flattag/internal/cmd/root"
)

func main() {
	cmd := root.NewCmdRoot()
	if err := cmd.Execute(); err != nil {
		noColor, _ := cmd.PersistentFlags().GetBool("no-color")
		root.PrintError(os.Stderr, err, noColor)
		os.Exit(root.ExitCode(err))
	}
}
