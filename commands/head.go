package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/picobox/picobox/core/proc"
)

// Head implements the POSIX head command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/head.html
func Head(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "head [-n NUMBER] [FILE]...",
		Short: "Print the first lines of each file to standard output.",
	}

	lineCount := cmd.Flags().IntLong("lines", 'n', 10, "number of lines to print")

	return cmd.Run(p, func() int {
		files := cmd.Flags().Args()
		showHeaders := len(files) > 1

		first := true
		return cmd.RunEachFileOrStdin(p, files, func(name string, fd io.Reader) error {
			if showHeaders {
				if !first {
					fmt.Fprintln(p.Stdout)
				}
				fmt.Fprintf(p.Stdout, "==> %s <==\n", name)
			}
			first = false

			scanner := bufio.NewScanner(fd)
			for i := 0; i < *lineCount && scanner.Scan(); i++ {
				fmt.Fprintf(p.Stdout, "%s\n", scanner.Bytes())
			}
			return scanner.Err()
		})
	})
}

var _ proc.Func = Head

func init() {
	register("head", "Print the first lines of each file.", Head)
}
