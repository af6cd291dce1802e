//go:build linux
// +build linux

package commands

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/picobox/picobox/core/proc"
)

// Stat implements the UNIX stat command.
func Stat(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:       "stat FILE...",
		Short:     "Display file status.",
		NeverBail: true,
	}

	return cmd.RunEachArg(p, func(arg string) error {
		info, err := p.FS.Stat(arg)
		if err != nil {
			return err
		}

		blocks := int64(0)
		uid, gid := 0, 0
		atime, ctime := info.ModTime(), info.ModTime()
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			blocks = st.Blocks
			uid, gid = int(st.Uid), int(st.Gid)
			atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
			ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		}

		fmt.Fprintf(p.Stdout, "  File: %s\n", arg)
		fmt.Fprintf(p.Stdout, "  Size: %d\n", info.Size())
		fmt.Fprintf(p.Stdout, "Blocks: %d\n", blocks)
		fmt.Fprintf(p.Stdout, "  Mode: %04o\n", info.Mode()&os.ModePerm)
		fmt.Fprintf(p.Stdout, "   Uid: %d\n", uid)
		fmt.Fprintf(p.Stdout, "   Gid: %d\n", gid)
		fmt.Fprintf(p.Stdout, "Access: %s\n", modTimeToHuman(atime))
		fmt.Fprintf(p.Stdout, "Modify: %s\n", modTimeToHuman(info.ModTime()))
		fmt.Fprintf(p.Stdout, "Change: %s\n", modTimeToHuman(ctime))
		return nil
	})
}

var _ proc.Func = Stat

func init() {
	register("stat", "Display file status.", Stat)
}
