package commands

import (
	"github.com/picobox/picobox/core/proc"
)

// True implements the POSIX true command.
func True(p *proc.Proc) int {
	return 0
}

// False implements the POSIX false command.
func False(p *proc.Proc) int {
	return 1
}

var (
	_ proc.Func = True
	_ proc.Func = False
)

func init() {
	register("true", "Exit with status 0.", True)
	register("false", "Exit with status 1.", False)
}
