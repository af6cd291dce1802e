package commands

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Rmdir implements a POSIX rmdir command.
func Rmdir(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "rmdir [OPTION...] DIRECTORY...",
		Short: "Remove empty directories.",
	}

	parents := cmd.Flags().BoolLong("parents", 'p', "remove ancestor directories too")
	verbose := cmd.Flags().BoolLong("verbose", 'v', "print a line for every deleted directory")

	return cmd.Run(p, func() int {
		directories := cmd.Flags().Args()
		if len(directories) == 0 {
			fmt.Fprintln(p.Stderr, "rmdir: missing operand")

			cmd.PrintHelp(p.Stderr)
			return 1
		}

		anyFailed := false
		for _, dir := range directories {
			steps := []string{}
			if *parents {
				var built []string
				for _, part := range strings.Split(dir, "/") {
					built = append(built, part)
					steps = append(steps, path.Join(built...))
				}
				// Sort longest to shortest for depth.
				sort.Slice(steps, func(i, j int) bool {
					return len(steps[i]) > len(steps[j])
				})
			} else {
				steps = append(steps, dir)
			}

			for _, dir := range steps {
				contents, err := afero.ReadDir(p.FS, dir)
				if err != nil {
					fmt.Fprintf(p.Stderr, "rmdir: cannot read directory %q: %s\n", dir, err)
					anyFailed = true
					break
				}

				if len(contents) > 0 {
					fmt.Fprintf(p.Stderr, "rmdir: directory not empty %q\n", dir)
					anyFailed = true
					break
				}

				err = p.FS.Remove(dir)
				if err != nil {
					fmt.Fprintf(p.Stderr, "rmdir: cannot remove directory %q: %s\n", dir, err)
					anyFailed = true
					break
				}
				if *verbose {
					fmt.Fprintf(p.Stdout, "rmdir: removed directory: %s\n", dir)
				}
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ proc.Func = Rmdir

func init() {
	register("rmdir", "Remove empty directories.", Rmdir)
}
