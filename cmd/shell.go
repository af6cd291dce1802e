package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/picobox/picobox/commands"
	"github.com/picobox/picobox/core/config"
	"github.com/picobox/picobox/core/shell"
)

var oneShot string

// shellCmd starts the interactive shell explicitly; `picobox` with no
// subcommand does the same thing.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runShell(oneShot)
	},
}

func runShell(command string) error {
	configuration, err := loadConfig()
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return err
	}

	dispatcher := &shell.Dispatcher{
		Registry: commands.NewRegistry(),
		SelfExec: []string{self, "applet"},
		Env:      appletEnviron(configuration),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	sh, err := shell.NewShell(dispatcher, shell.Options{
		Prompt:      configuration.Prompt,
		HistoryFile: configuration.HistoryPath(),
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})
	if err != nil {
		return err
	}

	if command != "" {
		sh.Interpret(command)
		os.Exit(sh.Ctx.LastStatus)
	}

	return sh.Run()
}

// appletEnviron is the environment applet children run with: the process
// environment plus the configuration directory, so applets that load the
// configuration themselves (pkg, ai) see the same one the shell was started
// with.
func appletEnviron(configuration *config.Configuration) []string {
	return append(os.Environ(), "PICOBOX_CONFIG="+configuration.Dir())
}

func init() {
	shellCmd.Flags().StringVarP(&oneShot, "command", "c", "", "run a single command line and exit")
	rootCmd.AddCommand(shellCmd)
}
