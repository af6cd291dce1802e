package commands

import (
	"bufio"
	"fmt"
	"io"

	"github.com/picobox/picobox/core/proc"
)

// Tail implements the POSIX tail command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/utilities/tail.html
func Tail(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "tail [-n NUMBER] [FILE]...",
		Short: "Print the last lines of each file to standard output.",
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

			if *lineCount <= 0 {
				return nil
			}

			// Ring buffer of the last N lines.
			ring := make([]string, *lineCount)
			total := 0
			scanner := bufio.NewScanner(fd)
			for scanner.Scan() {
				ring[total%*lineCount] = scanner.Text()
				total++
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			start := 0
			count := total
			if total > *lineCount {
				start = total % *lineCount
				count = *lineCount
			}
			for i := 0; i < count; i++ {
				fmt.Fprintln(p.Stdout, ring[(start+i)%*lineCount])
			}
			return nil
		})
	})
}

var _ proc.Func = Tail

func init() {
	register("tail", "Print the last lines of each file.", Tail)
}
