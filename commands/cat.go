package commands

import (
	"io"

	"github.com/picobox/picobox/core/proc"
)

// Cat implements the UNIX cat command. With no files it copies stdin, which
// makes it usable as a pipeline passthrough.
func Cat(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE]...",
		Short: "Concatenate FILE(s) to standard output.",
	}

	return cmd.Run(p, func() int {
		return cmd.RunEachFileOrStdin(p, cmd.Flags().Args(), func(name string, fd io.Reader) error {
			_, err := io.Copy(p.Stdout, fd)
			return err
		})
	})
}

var _ proc.Func = Cat

func init() {
	register("cat", "Concatenate FILE(s) to standard output.", Cat)
}
