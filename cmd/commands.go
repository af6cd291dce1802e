package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/picobox/picobox/commands"
	"github.com/picobox/picobox/core/shell"
)

// commandsCmd lists everything the shell can run.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the commands the shell provides.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var names []string

		for _, entry := range commands.All() {
			names = append(names, entry.Name)
		}
		for _, builtin := range []string{"cd", "exit", "help"} {
			if shell.IsBuiltin(builtin) {
				names = append(names, "shell:"+builtin)
			}
		}

		sort.Strings(names)

		for _, v := range names {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
