package commands

import (
	"fmt"
	"sort"

	"github.com/picobox/picobox/core/proc"
)

// Env implements the POSIX env command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/env.html
func Env(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the environment for command invocation.",
	}

	return cmd.Run(p, func() int {
		env := append([]string(nil), p.Environ...)
		sort.Strings(env)
		for _, envDef := range env {
			fmt.Fprintln(p.Stdout, envDef)
		}

		return 0
	})
}

var _ proc.Func = Env

func init() {
	register("env", "Print the environment for command invocation.", Env)
}
