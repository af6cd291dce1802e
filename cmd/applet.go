package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/picobox/picobox/commands"
	"github.com/picobox/picobox/core/shell"
)

// appletCmd is the child half of pipeline execution. The shell respawns the
// binary as `picobox applet [--redirect KIND:PATH]... -- NAME [ARGS]...` for
// every stage, so argument parsing is left entirely to the applet runner.
var appletCmd = &cobra.Command{
	Use:                "applet",
	Short:              "Run a single applet (used internally by the shell).",
	Hidden:             true,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(shell.AppletMain(commands.NewRegistry(), args))
	},
}

func init() {
	rootCmd.AddCommand(appletCmd)
}
