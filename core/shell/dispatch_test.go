//go:build linux
// +build linux

package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBuiltin(t *testing.T) {
	assert.True(t, IsBuiltin("cd"))
	assert.True(t, IsBuiltin("exit"))
	assert.True(t, IsBuiltin("help"))
	assert.False(t, IsBuiltin("echo"))
	assert.False(t, IsBuiltin(""))
}

func TestExecuteEmptyPipeline(t *testing.T) {
	d, _, _ := testDispatcher(t, nil)
	ctx := NewContext()
	ctx.LastStatus = 7

	outcome := d.Execute(ctx, nil)
	assert.Equal(t, 7, outcome.Code)
	assert.False(t, outcome.Exit)
}

func TestExecuteExitBuiltin(t *testing.T) {
	d, _, _ := testDispatcher(t, nil)
	ctx := NewContext()

	outcome := d.Execute(ctx, Pipeline{{Prog: "exit"}})
	assert.True(t, outcome.Exit)
	assert.True(t, ctx.ExitRequested())
}

func TestExecuteBuiltinRejectsRedirections(t *testing.T) {
	d, _, stderr := testDispatcher(t, nil)
	ctx := NewContext()

	outcome := d.Execute(ctx, Pipeline{{
		Prog:   "cd",
		Args:   []string{"/"},
		Redirs: []Redirection{{Kind: RedirOut, Path: "out"}},
	}})
	assert.Equal(t, 1, outcome.Code)
	assert.Equal(t, 1, ctx.LastStatus)
	assert.Contains(t, stderr.String(), "redirections are not supported for builtins")
}

// A builtin piped into anything is dispatched as a pipeline, so its effect
// stays out of the shell process.
func TestExecuteBuiltinInPipelineIsNotBuiltin(t *testing.T) {
	d, _, stderr := testDispatcher(t, nil)
	ctx := NewContext()

	before, err := os.Getwd()
	require.NoError(t, err)

	outcome := d.Execute(ctx, Pipeline{
		{Prog: "cd", Args: []string{"/"}},
		{Prog: "count-lines"},
	})
	assert.False(t, outcome.Exit)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, stderr.String(), "cd: command not found")
}

func TestExecuteCd(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(before)

	dir := t.TempDir()
	d, _, _ := testDispatcher(t, nil)
	ctx := NewContext()

	outcome := d.Execute(ctx, Pipeline{{Prog: "cd", Args: []string{dir}}})
	assert.Equal(t, 0, outcome.Code)

	got, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestExecuteCdHome(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(before)

	home := t.TempDir()
	d, _, _ := testDispatcher(t, nil)
	ctx := NewContext()
	ctx.SetVar("HOME", home)

	outcome := d.Execute(ctx, Pipeline{{Prog: "cd"}})
	assert.Equal(t, 0, outcome.Code)

	got, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestExecuteCdErrors(t *testing.T) {
	d, _, stderr := testDispatcher(t, nil)
	ctx := NewContext()

	outcome := d.Execute(ctx, Pipeline{{Prog: "cd", Args: []string{"/does/not/exist"}}})
	assert.Equal(t, 1, outcome.Code)
	assert.Contains(t, stderr.String(), "cd:")

	stderr.Reset()
	outcome = d.Execute(ctx, Pipeline{{Prog: "cd", Args: []string{"a", "b"}}})
	assert.Equal(t, 1, outcome.Code)
	assert.Contains(t, stderr.String(), "too many arguments")
}

func TestExecuteHelp(t *testing.T) {
	d, stdout, _ := testDispatcher(t, nil)
	ctx := NewContext()

	outcome := d.Execute(ctx, Pipeline{{Prog: "help"}})
	assert.Equal(t, 0, outcome.Code)
	assert.False(t, outcome.Exit)

	out := stdout.String()
	assert.Contains(t, out, "PicoBox Shell v"+Version)
	assert.Contains(t, out, "exit")
	// Registered applets are listed with their summaries.
	assert.Contains(t, out, "emit")
	assert.Contains(t, out, "print args")
}

func TestExecuteRecordsStatus(t *testing.T) {
	d, _, _ := testDispatcher(t, nil)
	ctx := NewContext()

	d.Execute(ctx, Pipeline{{Prog: "status", Args: []string{"4"}}})
	assert.Equal(t, 4, ctx.LastStatus)

	d.Execute(ctx, Pipeline{{Prog: "no-such-thing"}})
	assert.Equal(t, StatusNotFound, ctx.LastStatus)
}
