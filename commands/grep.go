package commands

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"github.com/picobox/picobox/core/proc"
)

// Grep implements the POSIX grep command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/
func Grep(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "grep [-ivn] PATTERN [FILE]...",
		Short: "Search files for text matching a pattern.",
	}

	invert := cmd.Flags().Bool('v', "Select lines not matching any of the specified patterns.")
	ignoreCase := cmd.Flags().Bool('i', "Perform pattern matching in searches without regard to case.")
	showLineNumbers := cmd.Flags().Bool('n', "Show line numbers.")

	return cmd.Run(p, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			fmt.Fprintln(p.Stderr, "grep: missing argument PATTERN")
			return 2
		}

		// NOTE: Officially, the PATTERN argument supports multiple patterns
		// delimited by newlines. It's a very rare case so we'll ignore it here.
		pattern := args[0]
		if *ignoreCase {
			pattern = "(?i)" + pattern
		}
		regex, err := regexp.Compile(pattern)
		if err != nil {
			fmt.Fprintf(p.Stderr, "grep: %v\n", err)
			return 2
		}

		files := args[1:]
		showFileName := len(files) > 1
		return cmd.RunEachFileOrStdin(p, files, func(name string, fd io.Reader) error {
			scanner := bufio.NewScanner(fd)
			lineNo := 1
			for scanner.Scan() {
				line := scanner.Bytes()
				lineMatches := regex.Match(line)

				if lineMatches != *invert {
					if showFileName {
						fmt.Fprintf(p.Stdout, "%s:", name)
					}

					if *showLineNumbers {
						fmt.Fprintf(p.Stdout, "%d:", lineNo)
					}

					fmt.Fprintf(p.Stdout, "%s\n", line)
				}
				lineNo++
			}

			return scanner.Err()
		})
	})
}

var _ proc.Func = Grep

func init() {
	register("grep", "Search files for text matching a pattern.", Grep)
}
