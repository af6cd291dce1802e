package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Ln implements the UNIX ln command.
func Ln(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "ln [-sf] TARGET LINK_NAME",
		Short: "Create a link to TARGET with the name LINK_NAME.",
	}

	opts := cmd.Flags()
	symbolic := opts.Bool('s', "make symbolic links instead of hard links")
	force := opts.Bool('f', "remove existing destination files")

	return cmd.RunE(p, func() error {
		args := opts.Args()
		if len(args) != 2 {
			return fmt.Errorf("expected TARGET and LINK_NAME")
		}
		target, linkname := args[0], args[1]

		if *force {
			p.FS.Remove(linkname)
		}

		if *symbolic {
			if linker, ok := p.FS.(afero.Linker); ok {
				return linker.SymlinkIfPossible(target, linkname)
			}
			// No symlink support on this filesystem, fall back to a copy.
			return copyContents(p.FS, target, linkname)
		}

		// afero has no hard link interface; only the real filesystem gets one.
		if _, ok := p.FS.(*afero.OsFs); ok {
			return os.Link(target, linkname)
		}
		return copyContents(p.FS, target, linkname)
	})
}

var _ proc.Func = Ln

func init() {
	register("ln", "Create links between files.", Ln)
}
