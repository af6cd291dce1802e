// Package cmdtest runs applets in-process against an in-memory filesystem
// and captured stdio, mirroring how the shell runs them in child processes.
package cmdtest

import (
	"bytes"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Cmd is similar to exec.Cmd but runs an applet function directly.
type Cmd struct {
	// Proc is the applet under test.
	Proc proc.Func
	// Argv holds the process arguments, the first should be the applet name.
	Argv []string
	// Dir is the working directory reported to the applet.
	Dir string
	// Env gives the environment for the applet in "key=value" form.
	Env []string
	// FS is the filesystem the applet sees. Defaults to an in-memory one.
	FS afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ExitStatus holds the applet's exit code after Run.
	ExitStatus int
}

// Command builds a Cmd with deterministic defaults.
func Command(fn proc.Func, name string, arg ...string) *Cmd {
	return &Cmd{
		Proc: fn,
		Argv: append([]string{name}, arg...),
		Dir:  "/",
		Env:  []string{"HOME=/home/user", "PATH=/bin"},
		FS:   afero.NewMemMapFs(),
	}
}

// Run executes the applet and records its exit status.
func (c *Cmd) Run() error {
	stdin := c.Stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	stdout := c.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	c.ExitStatus = c.Proc(&proc.Proc{
		Args:    c.Argv,
		FS:      c.FS,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Dir:     c.Dir,
		Environ: c.Env,
	})
	return nil
}

// CombinedOutput runs the applet and returns its combined stdout and stderr.
func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	if err := c.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
