package commands

import (
	"fmt"
	"os"
	"os/user"

	"github.com/picobox/picobox/core/proc"
)

// Hostname implements the UNIX hostname command.
func Hostname(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "hostname",
		Short: "Print the system's host name.",
	}

	return cmd.RunE(p, func() error {
		name, err := os.Hostname()
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Stdout, name)
		return nil
	})
}

// Whoami implements the UNIX whoami command.
func Whoami(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "whoami",
		Short: "Print the current user name.",
	}

	return cmd.RunE(p, func() error {
		// USER reflects the shell session; fall back to the process owner.
		if name := p.Getenv("USER"); name != "" {
			fmt.Fprintln(p.Stdout, name)
			return nil
		}

		current, err := user.Current()
		if err != nil {
			return err
		}
		fmt.Fprintln(p.Stdout, current.Username)
		return nil
	})
}

// Clear implements the clear command using ANSI escapes.
func Clear(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "clear",
		Short: "Clear the terminal screen.",
	}

	return cmd.Run(p, func() int {
		// Clear screen then move the cursor home.
		fmt.Fprint(p.Stdout, "\033[2J\033[H")
		return 0
	})
}

var (
	_ proc.Func = Hostname
	_ proc.Func = Whoami
	_ proc.Func = Clear
)

func init() {
	register("hostname", "Print the system's host name.", Hostname)
	register("whoami", "Print the current user name.", Whoami)
	register("clear", "Clear the terminal screen.", Clear)
}
