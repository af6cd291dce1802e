package shell

import "strings"

// RedirKind says which standard stream a redirection rebinds and how the
// target file is opened.
type RedirKind int

const (
	// RedirIn rebinds stdin to a file opened for reading.
	RedirIn RedirKind = iota
	// RedirOut rebinds stdout to a file created or truncated for writing.
	RedirOut
	// RedirAppend rebinds stdout to a file created or opened at its end.
	RedirAppend
)

func (k RedirKind) String() string {
	switch k {
	case RedirIn:
		return "<"
	case RedirOut:
		return ">"
	case RedirAppend:
		return ">>"
	default:
		return "?"
	}
}

// Redirection asks for a standard stream to be bound to a named file instead
// of its default destination. When a command carries several redirections of
// the same stream the last one wins, but every named file is still opened.
type Redirection struct {
	Kind RedirKind
	Path string
}

// SimpleCommand is a single program invocation: the program name, its
// argument vector (excluding the program itself) and its redirections.
// It is immutable once built; the engine only reads it.
type SimpleCommand struct {
	Prog   string
	Args   []string
	Redirs []Redirection
}

// Argv returns the full argument vector with the program name in slot zero,
// the form the spawned process sees.
func (c SimpleCommand) Argv() []string {
	return append([]string{c.Prog}, c.Args...)
}

func (c SimpleCommand) String() string {
	parts := append([]string{c.Prog}, c.Args...)
	for _, r := range c.Redirs {
		parts = append(parts, r.Kind.String(), r.Path)
	}
	return strings.Join(parts, " ")
}

// Pipeline is an ordered chain of simple commands. Each stage's stdout is
// implicitly connected to the next stage's stdin; explicit redirections on a
// stage are applied after the pipe wiring and therefore override it.
type Pipeline []SimpleCommand

func (p Pipeline) String() string {
	var parts []string
	for _, c := range p {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " | ")
}

// Assignment is a NAME=value shell variable assignment.
type Assignment struct {
	Name  string
	Value string
}

// Statement is one unit of a parsed command line: either a variable
// assignment or a pipeline, never both.
type Statement struct {
	Assign *Assignment
	Pipe   Pipeline
}
