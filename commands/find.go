package commands

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Find implements a small subset of the UNIX find command: a recursive walk
// filtered by base name pattern and file type.
func Find(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "find [PATH] [--name PATTERN] [--type f|d]",
		Short: "Search for files in a directory hierarchy.",
	}

	opts := cmd.Flags()
	namePattern := opts.StringLong("name", 0, "", "base of file name matches PATTERN")
	typeFilter := opts.StringLong("type", 0, "", "file is of type TYPE (f=file, d=directory)")

	return cmd.RunE(p, func() error {
		start := "."
		if args := opts.Args(); len(args) > 0 {
			start = args[0]
		}

		switch *typeFilter {
		case "", "f", "d":
		default:
			return fmt.Errorf("unknown type %q", *typeFilter)
		}

		return afero.Walk(p.FS, start, func(walked string, info os.FileInfo, err error) error {
			if err != nil {
				// Unreadable entries are skipped, like the real find
				// continuing past permission errors.
				return nil
			}
			if walked == start {
				return nil
			}

			if *namePattern != "" {
				ok, err := path.Match(*namePattern, info.Name())
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			switch *typeFilter {
			case "f":
				if !info.Mode().IsRegular() {
					return nil
				}
			case "d":
				if !info.IsDir() {
					return nil
				}
			}

			fmt.Fprintln(p.Stdout, filepath.ToSlash(walked))
			return nil
		})
	})
}

var _ proc.Func = Find

func init() {
	register("find", "Search for files in a directory hierarchy.", Find)
}
