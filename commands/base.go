// Package commands holds the utility applets built into the picobox binary.
// Each applet registers itself at init time; the shell builds its command
// registry from All().
package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	getopt "github.com/pborman/getopt/v2"

	"github.com/picobox/picobox/core/proc"
	"github.com/picobox/picobox/core/shell"
)

// allCommands holds every applet registered by this package.
var allCommands []shell.Entry

// register adds an applet to the package table consumed by All.
func register(name, short string, fn proc.Func) {
	allCommands = append(allCommands, shell.Entry{Name: name, Short: short, Proc: fn})
}

// All returns every applet this package provides.
func All() []shell.Entry {
	return append([]shell.Entry(nil), allCommands...)
}

// NewRegistry builds a registry holding every applet in the package.
func NewRegistry() *shell.Registry {
	reg := shell.NewRegistry()
	for _, e := range allCommands {
		if err := reg.Register(e); err != nil {
			panic(err)
		}
	}
	return reg
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

func modTimeToHuman(t time.Time) string {
	if time.Since(t) > 365*24*time.Hour {
		return t.Format("Jan _2  2006")
	}
	return t.Format("Jan _2 15:04")
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(p *proc.Proc, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(p.Args, nil)
	if err != nil && !s.NeverBail {
		fmt.Fprintf(p.Stderr, "error: %s\n\n", err)

		s.PrintHelp(p.Stderr)
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout)
		return 0
	}

	return callback()
}

// RunE runs the command with a callback that reports an error rather than an
// exit status. A non-nil error is printed under the applet's name and turns
// into status 1.
func (s *SimpleCommand) RunE(p *proc.Proc, callback func() error) int {
	return s.Run(p, func() int {
		if err := callback(); err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Name(), err)
			return 1
		}
		return 0
	})
}

// RunEachArg calls the callback once per positional argument. Processing
// continues past per-argument errors; any failure turns into exit status 1.
func (s *SimpleCommand) RunEachArg(p *proc.Proc, callback func(arg string) error) int {
	return s.Run(p, func() int {
		anyFailed := false
		for _, arg := range s.Flags().Args() {
			if err := callback(arg); err != nil {
				fmt.Fprintf(p.Stderr, "%s: %v\n", p.Name(), err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

// RunEachFileOrStdin calls the callback once per named file, or once with
// stdin when no files were given. Processing continues past per-file errors;
// any failure turns into exit status 1.
func (s *SimpleCommand) RunEachFileOrStdin(p *proc.Proc, files []string, callback func(name string, fd io.Reader) error) int {
	if len(files) == 0 {
		if err := callback("-", p.Stdin); err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Name(), err)
			return 1
		}
		return 0
	}

	anyFailed := false
	for _, name := range files {
		err := func() error {
			fd, err := p.Open(name)
			if err != nil {
				return err
			}
			defer fd.Close()
			return callback(name, fd)
		}()
		if err != nil {
			fmt.Fprintf(p.Stderr, "%s: %v\n", p.Name(), err)
			anyFailed = true
		}
	}

	if anyFailed {
		return 1
	}
	return 0
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

type ColorPrinter struct {
	value *string
	p     *proc.Proc
}

// Init sets up the flag used to determine the color output.
func (c *ColorPrinter) Init(flags *getopt.Set, p *proc.Proc) {
	c.p = p
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		if f, ok := c.p.Stdout.(*os.File); ok {
			return isatty.IsTerminal(f.Fd())
		}
		return false
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
