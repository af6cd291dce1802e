package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Du implements the UNIX du command, reporting one total per argument.
func Du(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "du [-sh] [FILE]...",
		Short: "Summarize disk usage of each FILE, recursively for directories.",
	}

	opts := cmd.Flags()
	human := opts.BoolLong("human-readable", 'h', "print sizes in human readable format")
	opts.BoolLong("summarize", 's', "display only a total for each argument")
	cmd.ShowHelp = opts.BoolLong("help", '?', "show this help and exit")

	return cmd.Run(p, func() int {
		paths := opts.Args()
		if len(paths) == 0 {
			paths = []string{"."}
		}

		exitCode := 0
		for _, arg := range paths {
			var total int64
			err := afero.Walk(p.FS, arg, func(walked string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				total += info.Size()
				return nil
			})
			if err != nil {
				fmt.Fprintf(p.Stderr, "du: %s: %v\n", arg, err)
				exitCode = 1
				continue
			}

			if *human {
				fmt.Fprintf(p.Stdout, "%s\t%s\n", BytesToHuman(total), arg)
			} else {
				fmt.Fprintf(p.Stdout, "%d\t%s\n", (total+1023)/1024, arg)
			}
		}
		return exitCode
	})
}

var _ proc.Func = Du

func init() {
	register("du", "Summarize disk usage.", Du)
}
