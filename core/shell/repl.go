package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// DefaultPrompt mirrors the original shell's prompt.
const DefaultPrompt = "$ "

// Options configures one interactive session.
type Options struct {
	// Prompt shown before each line; DefaultPrompt when empty.
	Prompt string

	// HistoryFile persists line history across sessions when non-empty.
	HistoryFile string

	// Stdin/Stdout/Stderr of the session. Nil values fall back to the
	// process's own streams.
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal tells readline whether to enable line editing; defaults
	// to true detection on the process's tty when nil.
	IsTerminal func() bool
}

// Shell is the interactive read-eval loop. It owns the session context and
// hands every parsed line to the dispatcher.
type Shell struct {
	Dispatcher *Dispatcher
	Ctx        *Context
	Readline   *readline.Instance

	stderr io.Writer
}

// NewShell builds an interactive shell around the dispatcher.
func NewShell(d *Dispatcher, opts Options) (*Shell, error) {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	cfg := &readline.Config{
		Prompt:      prompt,
		HistoryFile: opts.HistoryFile,
		Stdout:      opts.Stdout,
		Stderr:      opts.Stderr,
	}
	if opts.Stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(opts.Stdin)
	}
	if opts.IsTerminal != nil {
		cfg.FuncIsTerminal = opts.IsTerminal
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = rl.Stderr()
	}

	return &Shell{
		Dispatcher: d,
		Ctx:        NewContext(),
		Readline:   rl,
		stderr:     stderr,
	}, nil
}

// Run reads lines until end-of-input or the exit builtin. The exit request is
// observed only between top-level commands, never mid-pipeline.
func (s *Shell) Run() error {
	defer s.Readline.Close()

	for {
		line, err := s.Readline.Readline()
		switch {
		case err == io.EOF:
			return nil // input closed, quit
		case err == readline.ErrInterrupt:
			continue
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if s.Interpret(line) {
			return nil
		}

		if s.Ctx.ExitRequested() {
			return nil
		}
	}
}

// Interpret parses and executes one line, reporting whether the session
// should end.
func (s *Shell) Interpret(line string) (exit bool) {
	tokens, err := Split(line)
	if err != nil {
		fmt.Fprintf(s.stderr, "picobox: %v\n", err)
		s.Ctx.LastStatus = 2
		return false
	}

	for i, tok := range tokens {
		tokens[i] = s.Ctx.Expand(tok)
	}

	stmts, err := ParseTokens(tokens)
	if err != nil {
		fmt.Fprintf(s.stderr, "picobox: %v\n", err)
		s.Ctx.LastStatus = 2
		return false
	}

	for _, stmt := range stmts {
		if stmt.Assign != nil {
			s.Ctx.SetVar(stmt.Assign.Name, stmt.Assign.Value)
			s.Ctx.LastStatus = 0
			continue
		}

		outcome := s.Dispatcher.Execute(s.Ctx, stmt.Pipe)
		if outcome.Exit {
			return true
		}
	}

	return false
}
