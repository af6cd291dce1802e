package shell

import (
	"fmt"
	"regexp"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// The engine consumes an already structured command model; this file is the
// thin front that builds that model from an interactive line. Grammar:
//
//	line      := statement (';' statement)*
//	statement := NAME '=' VALUE | pipeline
//	pipeline  := command ('|' command)*
//	command   := WORD+ (('<' | '>' | '>>') WORD)*

var assignRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// Split tokenizes one command line. Operator characters outside quotes are
// isolated first so "a|b" and "a | b" tokenize identically, then the words
// are split with shell-style quoting rules.
func Split(line string) ([]string, error) {
	tokens, err := shlex.Split(spaceOperators(line), true)
	if err != nil {
		return nil, fmt.Errorf("syntax error: %w", err)
	}
	return tokens, nil
}

// spaceOperators pads unquoted |, ;, < , > and >> with spaces.
func spaceOperators(line string) string {
	var (
		out     strings.Builder
		quote   rune
		escaped bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case escaped:
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '|' || r == ';' || r == '<':
			out.WriteRune(' ')
			out.WriteRune(r)
			out.WriteRune(' ')
			continue
		case r == '>':
			out.WriteRune(' ')
			out.WriteRune('>')
			if i+1 < len(runes) && runes[i+1] == '>' {
				out.WriteRune('>')
				i++
			}
			out.WriteRune(' ')
			continue
		}

		out.WriteRune(r)
	}

	return out.String()
}

// ParseTokens builds statements from an expanded token stream.
func ParseTokens(tokens []string) ([]Statement, error) {
	var stmts []Statement

	for len(tokens) > 0 {
		end := len(tokens)
		for i, tok := range tokens {
			if tok == ";" {
				end = i
				break
			}
		}

		group := tokens[:end]
		if end < len(tokens) {
			tokens = tokens[end+1:]
		} else {
			tokens = nil
		}

		if len(group) == 0 {
			continue
		}

		if len(group) == 1 && assignRegexp.MatchString(group[0]) {
			parts := strings.SplitN(group[0], "=", 2)
			stmts = append(stmts, Statement{
				Assign: &Assignment{Name: parts[0], Value: parts[1]},
			})
			continue
		}

		pipe, err := parsePipeline(group)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, Statement{Pipe: pipe})
	}

	return stmts, nil
}

func parsePipeline(tokens []string) (Pipeline, error) {
	var (
		pipe  Pipeline
		stage SimpleCommand
	)

	finish := func() error {
		if stage.Prog == "" {
			return fmt.Errorf("syntax error near unexpected token %q", "|")
		}
		pipe = append(pipe, stage)
		stage = SimpleCommand{}
		return nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok {
		case "|":
			if err := finish(); err != nil {
				return nil, err
			}
		case "<", ">", ">>":
			if i+1 >= len(tokens) || isOperator(tokens[i+1]) {
				return nil, fmt.Errorf("syntax error: missing redirection target after %q", tok)
			}
			if stage.Prog == "" {
				return nil, fmt.Errorf("syntax error near unexpected token %q", tok)
			}
			kind := RedirIn
			switch tok {
			case ">":
				kind = RedirOut
			case ">>":
				kind = RedirAppend
			}
			stage.Redirs = append(stage.Redirs, Redirection{Kind: kind, Path: tokens[i+1]})
			i++
		default:
			if stage.Prog == "" {
				stage.Prog = tok
			} else {
				stage.Args = append(stage.Args, tok)
			}
		}
	}

	if stage.Prog == "" {
		return nil, fmt.Errorf("syntax error: incomplete pipeline")
	}
	pipe = append(pipe, stage)
	return pipe, nil
}

func isOperator(tok string) bool {
	switch tok {
	case "|", ";", "<", ">", ">>":
		return true
	}
	return false
}
