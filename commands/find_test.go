package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobox/picobox/commands/cmdtest"
)

func seedFindTree(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "/data/a.txt", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/logs/b.log", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/logs/c.txt", []byte("c"), 0644))
}

func TestFind(t *testing.T) {
	t.Run("lists everything under the start path", func(t *testing.T) {
		cmd := cmdtest.Command(Find, "find", "/data")
		seedFindTree(t, cmd.FS)
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "/data/a.txt\n/data/logs\n/data/logs/b.log\n/data/logs/c.txt\n", string(out))
	})

	t.Run("name pattern", func(t *testing.T) {
		cmd := cmdtest.Command(Find, "find", "--name", "*.txt", "/data")
		seedFindTree(t, cmd.FS)
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "/data/a.txt\n/data/logs/c.txt\n", string(out))
	})

	t.Run("type directory", func(t *testing.T) {
		cmd := cmdtest.Command(Find, "find", "--type", "d", "/data")
		seedFindTree(t, cmd.FS)
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "/data/logs\n", string(out))
	})

	t.Run("type file with name pattern", func(t *testing.T) {
		cmd := cmdtest.Command(Find, "find", "--type", "f", "--name", "*.log", "/data")
		seedFindTree(t, cmd.FS)
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "/data/logs/b.log\n", string(out))
	})

	t.Run("unknown type", func(t *testing.T) {
		cmd := cmdtest.Command(Find, "find", "--type", "x", "/data")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "unknown type")
	})
}
