//go:build linux

package commands

import (
	"bytes"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/picobox/picobox/core/proc"
)

func unameString(field [65]byte) string {
	return string(bytes.TrimRight(field[:], "\x00"))
}

// Uname implements the POSIX command by the same name.
func Uname(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "uname [OPTION...]",
		Short: "Display system information.",
	}

	opts := cmd.Flags()
	showAll := opts.BoolLong("all", 'a', "print all information")
	showKernelName := opts.BoolLong("kernel-name", 's', "print the kernel name")
	showNodename := opts.BoolLong("nodename", 'n', "print the network node name")
	showRelease := opts.BoolLong("kernel-release", 'r', "print the kernel release")
	showVersion := opts.BoolLong("kernel-version", 'v', "print the kernel version")
	showMachine := opts.BoolLong("machine", 'm', "print the machine name")

	return cmd.RunE(p, func() error {
		var uname unix.Utsname
		if err := unix.Uname(&uname); err != nil {
			return err
		}

		anyPrinted := false
		for _, entry := range []struct {
			flag     *bool
			property string
		}{
			{showKernelName, unameString(uname.Sysname)},
			{showNodename, unameString(uname.Nodename)},
			{showRelease, unameString(uname.Release)},
			{showVersion, unameString(uname.Version)},
			{showMachine, unameString(uname.Machine)},
		} {
			if *entry.flag || *showAll {
				if anyPrinted {
					fmt.Fprint(p.Stdout, " ")
				}
				fmt.Fprint(p.Stdout, entry.property)
				anyPrinted = true
			}
		}

		if !anyPrinted {
			fmt.Fprint(p.Stdout, unameString(uname.Sysname))
		}

		fmt.Fprintln(p.Stdout)
		return nil
	})
}

var _ proc.Func = Uname

func init() {
	register("uname", "Display system information.", Uname)
}
