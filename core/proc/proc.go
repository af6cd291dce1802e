// Package proc holds the runtime handle applets receive when they run.
//
// In the shell each applet executes in its own OS process with the real
// filesystem and standard streams. Tests swap those for an in-memory
// filesystem and buffers.
package proc

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Func is the entry point every applet implements. The return value is the
// process exit code.
type Func func(p *Proc) int

// Proc is the environment one applet invocation runs against.
type Proc struct {
	// Args holds the argument vector, Args[0] is the applet name.
	Args []string

	// FS is the filesystem the applet operates on.
	FS afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dir is the working directory of the process.
	Dir string

	// Environ holds the process environment in "key=value" form.
	Environ []string
}

// New returns a Proc bound to the calling OS process.
func New(args []string) *Proc {
	wd, _ := os.Getwd()
	return &Proc{
		Args:    args,
		FS:      afero.NewOsFs(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Dir:     wd,
		Environ: os.Environ(),
	}
}

// Name returns the applet name the process was invoked as.
func (p *Proc) Name() string {
	if len(p.Args) == 0 {
		return ""
	}
	return p.Args[0]
}

// Getwd returns the working directory of the process.
func (p *Proc) Getwd() string {
	return p.Dir
}

// Getenv returns the value of the named environment variable or "" if unset.
func (p *Proc) Getenv(key string) string {
	prefix := key + "="
	// Last assignment wins, matching os.Environ semantics.
	for i := len(p.Environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(p.Environ[i], prefix) {
			return strings.TrimPrefix(p.Environ[i], prefix)
		}
	}
	return ""
}

// LookupEnv is like Getenv but reports whether the variable was set at all.
func (p *Proc) LookupEnv(key string) (string, bool) {
	prefix := key + "="
	for i := len(p.Environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(p.Environ[i], prefix) {
			return strings.TrimPrefix(p.Environ[i], prefix), true
		}
	}
	return "", false
}

// Open opens the named file for reading on the process filesystem.
func (p *Proc) Open(name string) (afero.File, error) {
	return p.FS.Open(name)
}
