package commands

import (
	"fmt"

	"github.com/picobox/picobox/core/proc"
)

// Pwd implements the UNIX pwd command.
func Pwd(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the name of the current working directory.",
	}

	return cmd.Run(p, func() int {
		fmt.Fprintln(p.Stdout, p.Getwd())
		return 0
	})
}

var _ proc.Func = Pwd

func init() {
	register("pwd", "Print the name of the current working directory.", Pwd)
}
