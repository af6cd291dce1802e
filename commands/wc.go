package commands

import (
	"fmt"
	"io"
	"unicode"

	"github.com/picobox/picobox/core/proc"
)

type wcCount struct {
	bytes int
	lines int
	chars int
	words int
	name  string

	inSpace bool
}

func (w *wcCount) Write(data []byte) (int, error) {
	for _, c := range data {
		isFirstByte := w.bytes == 0
		w.bytes++

		// Assume UTF-8 characters. Bytes following the leading byte always
		// have MSB of 0b10 indicating they're part of a previous character.
		if c < 0b10000000 || c > 0b10111111 {
			w.chars++
		}

		if c == '\n' {
			w.lines++
		}

		if unicode.IsSpace(rune(c)) {
			w.inSpace = true
		} else {
			if w.inSpace || isFirstByte {
				w.words++
			}
			w.inSpace = false
		}
	}

	return len(data), nil
}

func newWcCount(name string, fd io.Reader) (*wcCount, error) {
	out := wcCount{name: name}
	if _, err := io.Copy(&out, fd); err != nil {
		return nil, err
	}
	return &out, nil
}

func (w *wcCount) increment(other *wcCount) {
	w.bytes += other.bytes
	w.chars += other.chars
	w.lines += other.lines
	w.words += other.words
}

// Wc implements the POSIX command by the same name.
//
// https://pubs.opengroup.org/onlinepubs/009695399/utilities/wc.html
func Wc(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "wc [-c|-m] [-lw] [FILE...]",
		Short: "Write the number of newlines, words, and bytes contained in each input file to the standard output.",
	}

	opts := cmd.Flags()
	writeLines := opts.Bool('l', "write the number of newlines in each file")
	writeWords := opts.Bool('w', "write the number of words in each file")
	writeBytes := opts.Bool('c', "write the number of bytes in each file")
	writeChars := opts.Bool('m', "write the number of characters in each file")

	return cmd.RunE(p, func() error {
		args := opts.Args()

		nonePicked := !(*writeLines || *writeWords || *writeBytes || *writeChars)

		var cols []func(*wcCount) string
		if *writeLines || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.lines) })
		}
		if *writeWords || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.words) })
		}
		if *writeBytes || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.bytes) })
		}
		if *writeChars {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.chars) })
		}

		displayCount := func(count *wcCount) {
			for i, col := range cols {
				if i != 0 {
					fmt.Fprint(p.Stdout, " ")
				}
				fmt.Fprint(p.Stdout, col(count))
			}
			fmt.Fprintln(p.Stdout)
		}

		if len(args) == 0 {
			count, err := newWcCount("", p.Stdin)
			if err != nil {
				return err
			}
			displayCount(count)
			return nil
		}

		cols = append(cols, func(w *wcCount) string { return w.name })

		var counts []*wcCount
		for _, path := range args {
			fd, err := p.Open(path)
			if err != nil {
				return err
			}

			count, err := newWcCount(path, fd)
			fd.Close()
			if err != nil {
				return err
			}

			counts = append(counts, count)
		}

		total := &wcCount{name: "total"}
		for _, count := range counts {
			total.increment(count)
			displayCount(count)
		}
		if len(counts) > 1 {
			displayCount(total)
		}

		return nil
	})
}

var _ proc.Func = Wc

func init() {
	register("wc", "Count newlines, words, and bytes in each input file.", Wc)
}
