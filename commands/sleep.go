package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/picobox/picobox/core/proc"
)

// Sleep implements the POSIX sleep command with fractional second support.
func Sleep(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "sleep SECONDS",
		Short: "Pause for the given number of seconds.",
	}

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) != 1 {
			fmt.Fprintln(p.Stderr, "sleep: missing operand SECONDS")
			return 1
		}

		seconds, err := strconv.ParseFloat(args[0], 64)
		if err != nil || seconds < 0 {
			fmt.Fprintf(p.Stderr, "sleep: invalid time interval %q\n", args[0])
			return 1
		}

		time.Sleep(time.Duration(seconds * float64(time.Second)))
		return 0
	})
}

var _ proc.Func = Sleep

func init() {
	register("sleep", "Pause for the given number of seconds.", Sleep)
}
