package commands

import (
	"fmt"
	"path"
	"strings"

	"github.com/picobox/picobox/core/proc"
)

// Basename implements the POSIX basename command.
func Basename(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "basename PATH [SUFFIX]",
		Short: "Strip directory and suffix from a path.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintln(p.Stderr, "basename: missing operand")
			return 1
		}

		name := path.Base(args[0])
		if len(args) > 1 && name != args[1] {
			name = strings.TrimSuffix(name, args[1])
		}

		fmt.Fprintln(p.Stdout, name)
		return 0
	})
}

// Dirname implements the POSIX dirname command.
func Dirname(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "dirname PATH",
		Short: "Strip the last component from a path.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintln(p.Stderr, "dirname: missing operand")
			return 1
		}

		fmt.Fprintln(p.Stdout, path.Dir(args[0]))
		return 0
	})
}

var (
	_ proc.Func = Basename
	_ proc.Func = Dirname
)

func init() {
	register("basename", "Strip directory and suffix from a path.", Basename)
	register("dirname", "Strip the last component from a path.", Dirname)
}
