//go:build linux
// +build linux

package commands

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/picobox/picobox/core/proc"
)

// Df implements the UNIX df command for one filesystem.
func Df(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "df [-h] [FILE]",
		Short: "Report filesystem disk space usage.",
	}

	opts := cmd.Flags()
	human := opts.BoolLong("human-readable", 'h', "print sizes in human readable format")
	cmd.ShowHelp = opts.BoolLong("help", '?', "show this help and exit")

	return cmd.RunE(p, func() error {
		path := "."
		if args := opts.Args(); len(args) > 0 {
			path = args[0]
		}

		var vfs unix.Statfs_t
		if err := unix.Statfs(path, &vfs); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		frsize := vfs.Frsize
		if frsize <= 0 {
			frsize = vfs.Bsize
		}
		total := int64(vfs.Blocks) * frsize
		avail := int64(vfs.Bavail) * frsize
		used := total - int64(vfs.Bfree)*frsize
		usePercent := 0
		if total > 0 {
			usePercent = int(used * 100 / total)
		}

		if *human {
			fmt.Fprintf(p.Stdout, "Filesystem     Size  Used Avail Use%%\n")
			fmt.Fprintf(p.Stdout, "%-15s%5s %5s %5s %3d%%\n",
				path, BytesToHuman(total), BytesToHuman(used), BytesToHuman(avail), usePercent)
		} else {
			fmt.Fprintf(p.Stdout, "Filesystem     1K-blocks      Used Available Use%%\n")
			fmt.Fprintf(p.Stdout, "%-15s%10d %10d %10d %3d%%\n",
				path, total/1024, used/1024, avail/1024, usePercent)
		}
		return nil
	})
}

var _ proc.Func = Df

func init() {
	register("df", "Report filesystem disk space usage.", Df)
}
