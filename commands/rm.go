package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/picobox/picobox/core/proc"
)

// Rm implements a POSIX rm command.
func Rm(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "rm [OPTION...] FILE...",
		Short: "Remove files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore missing files and arguments, never prompt")

	return cmd.Run(p, func() int {
		anyFailed := false
		for _, file := range cmd.Flags().Args() {
			stat, statErr := p.FS.Stat(file)
			switch {
			case errors.Is(statErr, fs.ErrNotExist):
				if !*force {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: no such file or directory\n", file)
					anyFailed = true
				}
			case statErr != nil:
				fmt.Fprintf(p.Stderr, "rm: can't stat %q: %v\n", file, statErr)
				anyFailed = true
			case stat.Mode().IsDir() && !*recursive:
				fmt.Fprintf(p.Stderr, "rm: can't remove %q: is a directory\n", file)
				anyFailed = true
			case stat.Mode().IsDir():
				if err := p.FS.RemoveAll(file); err != nil {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			default:
				if err := p.FS.Remove(file); err != nil {
					fmt.Fprintf(p.Stderr, "rm: can't remove %q: %v\n", file, err)
					anyFailed = true
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ proc.Func = Rm

func init() {
	register("rm", "Remove files or directories.", Rm)
}
