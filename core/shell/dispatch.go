package shell

import (
	"fmt"
	"io"
	"os"
)

// Version of the shell, shown by the help builtin.
const Version = "0.1.0"

// Outcome is the result of executing one command line: either an exit status
// or a request to end the shell session.
type Outcome struct {
	Code int
	Exit bool
}

// Dispatcher routes parsed commands: builtins run synchronously in the shell
// process, everything else becomes a pipeline of child processes (a single
// command is a pipeline of length one).
type Dispatcher struct {
	// Registry of applets, consulted by the help builtin here and by the
	// applet runner in the spawned children.
	Registry *Registry

	// SelfExec is the argv prefix used to respawn this binary in applet
	// mode, e.g. {"/usr/bin/picobox", "applet"}.
	SelfExec []string

	// Env for spawned children; nil inherits the shell's environment
	// unmodified.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// IsBuiltin reports whether name must run inside the shell process because
// its effect has to be visible in the shell's own state.
func IsBuiltin(name string) bool {
	switch name {
	case "cd", "exit", "help":
		return true
	}
	return false
}

// Execute runs one pipeline and records its status on the context. Unknown
// program names come back as StatusNotFound, never as an error; the session
// always continues unless the exit builtin ran.
func (d *Dispatcher) Execute(ctx *Context, p Pipeline) Outcome {
	if len(p) == 0 {
		return Outcome{Code: ctx.LastStatus}
	}

	if len(p) == 1 && IsBuiltin(p[0].Prog) {
		return d.runBuiltin(ctx, p[0])
	}

	code, err := d.RunPipeline(p)
	if err != nil {
		fmt.Fprintf(d.Stderr, "picobox: %v\n", err)
		code = 1
	}
	ctx.LastStatus = code
	return Outcome{Code: code}
}

func (d *Dispatcher) runBuiltin(ctx *Context, cmd SimpleCommand) Outcome {
	// Builtins never fork, so there is no child to apply redirections in.
	if len(cmd.Redirs) > 0 {
		fmt.Fprintf(d.Stderr, "%s: redirections are not supported for builtins\n", cmd.Prog)
		ctx.LastStatus = 1
		return Outcome{Code: 1}
	}

	switch cmd.Prog {
	case "exit":
		ctx.RequestExit()
		return Outcome{Exit: true}
	case "cd":
		code := d.builtinCd(ctx, cmd.Argv())
		ctx.LastStatus = code
		return Outcome{Code: code}
	case "help":
		d.builtinHelp()
		ctx.LastStatus = 0
		return Outcome{}
	}

	// Unreachable while IsBuiltin and this switch agree.
	fmt.Fprintf(d.Stderr, "%s: unknown builtin\n", cmd.Prog)
	ctx.LastStatus = 1
	return Outcome{Code: 1}
}

// builtinCd changes the shell process's own working directory, which children
// then inherit.
func (d *Dispatcher) builtinCd(ctx *Context, args []string) int {
	switch len(args) {
	case 1:
		home := ctx.Var("HOME")
		if home == "" {
			fmt.Fprintln(d.Stderr, "cd: HOME not set")
			return 1
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			fmt.Fprintf(d.Stderr, "%s: %v\n", args[0], err)
			return 1
		}
	default:
		fmt.Fprintf(d.Stderr, "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

func (d *Dispatcher) builtinHelp() {
	w := d.Stdout
	fmt.Fprintf(w, "PicoBox Shell v%s\n", Version)
	fmt.Fprintln(w, "Type 'help' for available commands, 'exit' to quit.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtin commands:")
	fmt.Fprintln(w, "  exit       - Exit the shell")
	fmt.Fprintln(w, "  help       - Show this help message")
	fmt.Fprintln(w, "  cd [DIR]   - Change directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available utility commands:")

	if d.Registry != nil {
		d.Registry.Walk(func(e Entry) {
			fmt.Fprintf(w, "  %-10s %s\n", e.Name, e.Short)
		})
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "For help on a specific command, use: <command> --help")
}
