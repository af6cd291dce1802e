package core

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobox/picobox/core/config"
)

func testServer(t *testing.T, mutate func(*config.Configuration)) *Server {
	t.Helper()

	configuration, err := config.LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	if mutate != nil {
		mutate(configuration)
	}

	server, err := NewServer(configuration, ioutil.Discard)
	require.NoError(t, err)
	return server
}

func TestServerPasswordHandler(t *testing.T) {
	server := testServer(t, func(c *config.Configuration) {
		c.SSH.Passwords = []string{"hunter2", "letmein"}
	})

	assert.True(t, server.checkPassword("hunter2"))
	assert.True(t, server.checkPassword("letmein"))
	assert.False(t, server.checkPassword("wrong"))
	assert.False(t, server.checkPassword(""))
}

func TestServerPasswordHandlerAllowAny(t *testing.T) {
	server := testServer(t, func(c *config.Configuration) {
		c.SSH.AllowAnyPassword = true
	})

	assert.True(t, server.checkPassword("anything"))
	assert.True(t, server.checkPassword(""))
}

func TestServerPasswordHandlerEmptyList(t *testing.T) {
	server := testServer(t, nil)

	// No configured passwords and no allow-any means nobody gets in.
	assert.False(t, server.checkPassword("guess"))
}

// Applet children of a session must see the server's configuration directory
// and the session user, so applets that load the configuration themselves
// (pkg, ai) resolve the same one the server was started with.
func TestServerSessionEnviron(t *testing.T) {
	server := testServer(t, nil)

	env := server.sessionEnviron("alice")
	assert.Contains(t, env, "PICOBOX_CONFIG="+server.configuration.Dir())
	assert.Contains(t, env, "USER=alice")

	// Each session builds its own slice.
	other := server.sessionEnviron("bob")
	assert.Contains(t, other, "USER=bob")
	assert.Contains(t, env, "USER=alice")
}
