//go:build linux
// +build linux

package shell

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/picobox/picobox/core/proc"
	"golang.org/x/sys/unix"
)

// AppletMain is the child-side half of the orchestrator: it runs inside the
// freshly spawned process for one pipeline stage. It applies the stage's
// redirections, then either runs a registered applet in-process or replaces
// the process image with the named external program.
//
// The returned value is the process exit code; callers are expected to pass
// it straight to os.Exit.
func AppletMain(reg *Registry, args []string) int {
	var redirs []Redirection

	i := 0
	for i < len(args) {
		arg := args[i]
		switch {
		case arg == "--":
			i++
		case arg == "--redirect":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "applet: --redirect needs an argument")
				return 2
			}
			r, err := ParseRedirectSpec(args[i+1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "applet: %v\n", err)
				return 2
			}
			redirs = append(redirs, r)
			i += 2
			continue
		case strings.HasPrefix(arg, "--redirect="):
			r, err := ParseRedirectSpec(strings.TrimPrefix(arg, "--redirect="))
			if err != nil {
				fmt.Fprintf(os.Stderr, "applet: %v\n", err)
				return 2
			}
			redirs = append(redirs, r)
			i++
			continue
		}
		break
	}

	argv := args[i:]
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "applet: missing program name")
		return 2
	}

	// A failed redirection is fatal to this one process only, and happens
	// before the program image is considered at all.
	if err := ApplyRedirections(redirs); err != nil {
		fmt.Fprintf(os.Stderr, "picobox: %v\n", err)
		return 1
	}

	name := argv[0]
	if entry, ok := reg.Find(name); ok {
		// proc.New picks up fds 0 and 1 after the redirections above.
		return entry.Proc(proc.New(argv))
	}

	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: command not found\n", name)
		return StatusNotFound
	}
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	}
	return StatusNotFound
}
