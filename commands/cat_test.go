package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/picobox/picobox/commands/cmdtest"
)

func TestCat(t *testing.T) {
	t.Run("files are concatenated in order", func(t *testing.T) {
		cmd := cmdtest.Command(Cat, "cat", "/a.txt", "/b.txt")
		assert.Nil(t, afero.WriteFile(cmd.FS, "/a.txt", []byte("first\n"), 0644))
		assert.Nil(t, afero.WriteFile(cmd.FS, "/b.txt", []byte("second\n"), 0644))

		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "first\nsecond\n", string(out))
	})

	t.Run("no arguments copies stdin", func(t *testing.T) {
		cmd := cmdtest.Command(Cat, "cat")
		cmd.Stdin = strings.NewReader("from stdin\n")

		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "from stdin\n", string(out))
	})

	t.Run("missing file fails but later files still print", func(t *testing.T) {
		cmd := cmdtest.Command(Cat, "cat", "/nope.txt", "/a.txt")
		assert.Nil(t, afero.WriteFile(cmd.FS, "/a.txt", []byte("still here\n"), 0644))

		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "still here")
		assert.Contains(t, string(out), "cat:")
	})
}
