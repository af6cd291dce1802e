package shell

import "os"

// Context is the shell-wide mutable state: the variable table, the status of
// the last executed line and the cooperative exit flag. The working directory
// is deliberately not mirrored here, it lives in the OS process itself so
// that spawned children inherit it for free.
//
// Only the dispatcher and builtins touch a Context; child processes never see
// it.
type Context struct {
	vars map[string]string

	// LastStatus is the exit status of the most recent command line.
	LastStatus int

	exitRequested bool
}

func NewContext() *Context {
	return &Context{vars: make(map[string]string)}
}

// RequestExit marks the session as finished. The flag is only observed
// between top-level commands, never mid-pipeline.
func (c *Context) RequestExit() {
	c.exitRequested = true
}

// ExitRequested reports whether the exit builtin has run.
func (c *Context) ExitRequested() bool {
	return c.exitRequested
}

// SetVar stores a shell variable.
func (c *Context) SetVar(name, value string) {
	c.vars[name] = value
}

// Var returns the value of a shell variable, falling back to the process
// environment like the original variable table did.
func (c *Context) Var(name string) string {
	if v, ok := c.vars[name]; ok {
		return v
	}
	return os.Getenv(name)
}

// Expand substitutes $NAME and ${NAME} references in a token.
func (c *Context) Expand(token string) string {
	return os.Expand(token, c.Var)
}
