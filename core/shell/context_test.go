package shell

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextVars(t *testing.T) {
	ctx := NewContext()
	assert.Equal(t, "", ctx.Var("PICOBOX_CTX_TEST"))

	ctx.SetVar("PICOBOX_CTX_TEST", "local")
	assert.Equal(t, "local", ctx.Var("PICOBOX_CTX_TEST"))

	// Shell variables shadow the process environment.
	os.Setenv("PICOBOX_CTX_TEST", "env")
	defer os.Unsetenv("PICOBOX_CTX_TEST")
	assert.Equal(t, "local", ctx.Var("PICOBOX_CTX_TEST"))

	assert.Equal(t, "env", NewContext().Var("PICOBOX_CTX_TEST"))
}

func TestContextExpand(t *testing.T) {
	ctx := NewContext()
	ctx.SetVar("NAME", "world")

	assert.Equal(t, "hello world", ctx.Expand("hello $NAME"))
	assert.Equal(t, "hello world!", ctx.Expand("hello ${NAME}!"))
	assert.Equal(t, "hello ", ctx.Expand("hello $PICOBOX_CTX_UNSET"))
}

func TestContextExit(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.ExitRequested())
	ctx.RequestExit()
	assert.True(t, ctx.ExitRequested())
}
