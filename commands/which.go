package commands

import (
	"fmt"
	"os/exec"

	"github.com/picobox/picobox/core/proc"
)

// Which implements the UNIX which command. Built-in applets win over $PATH,
// matching how the shell resolves programs.
func Which(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "which [COMMAND...]",
		Short: "Locate a command.",
		// Never bail, even if args are bad.
		NeverBail: true,
	}

	return cmd.RunEachArg(p, func(arg string) error {
		for _, entry := range allCommands {
			if entry.Name == arg {
				fmt.Fprintf(p.Stdout, "%s: picobox applet\n", arg)
				return nil
			}
		}

		res, err := exec.LookPath(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Stdout, res)
		return nil
	})
}

var _ proc.Func = Which

func init() {
	register("which", "Locate a command.", Which)
}
