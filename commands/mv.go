package commands

import (
	"fmt"

	"github.com/picobox/picobox/core/proc"
)

// Mv implements the UNIX mv command as a rename; cross-filesystem moves are
// not attempted.
func Mv(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "mv [-f] SOURCE DEST",
		Short: "Rename SOURCE to DEST, or move SOURCE into DIRECTORY.",
	}

	opts := cmd.Flags()
	opts.Bool('f', "force overwrite")

	return cmd.RunE(p, func() error {
		args := opts.Args()
		if len(args) != 2 {
			return fmt.Errorf("expected SOURCE and DEST")
		}
		return p.FS.Rename(args[0], resolveIntoDir(p.FS, args[1], args[0]))
	})
}

var _ proc.Func = Mv

func init() {
	register("mv", "Move (rename) files.", Mv)
}
