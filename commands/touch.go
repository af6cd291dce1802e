package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/picobox/picobox/core/proc"
)

// Touch implements a POSIX touch command.
func Touch(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "touch [OPTION...] FILE...",
		Short: "Update the access and modification times of files to now.",
	}

	// Accepted for compatibility; both times are always set together.
	cmd.Flags().Bool('a', "only change the access time")
	cmd.Flags().Bool('m', "only change the modification time")

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.Run(p, func() int {
		paths := cmd.Flags().Args()

		now := time.Now()

		var anyFailed bool
		for _, path := range paths {
			err := p.FS.Chtimes(path, now, now)
			switch {
			case errors.Is(err, fs.ErrNotExist) && !*noCreate:
				fd, err := p.FS.Create(path)
				if err != nil {
					fmt.Fprintf(p.Stderr, "touch: cannot touch %q: %s\n", path, err)
					anyFailed = true
					continue
				}
				fd.Close()
			case errors.Is(err, fs.ErrNotExist) && *noCreate:
				// Not an error.
			case err != nil:
				fmt.Fprintf(p.Stderr, "touch: setting times of %q: %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ proc.Func = Touch

func init() {
	register("touch", "Update the access and modification times of files.", Touch)
}
