package commands

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/picobox/picobox/commands/cmdtest"
)

func TestGrep(t *testing.T) {
	const haystack = "one needle\ntwo\nthree needle\nfour\n"

	run := func(t *testing.T, stdin string, args ...string) (string, int) {
		t.Helper()
		cmd := cmdtest.Command(Grep, "grep", args...)
		cmd.Stdin = strings.NewReader(stdin)
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		return string(out), cmd.ExitStatus
	}

	t.Run("matching lines", func(t *testing.T) {
		out, status := run(t, haystack, "needle")
		assert.Equal(t, 0, status)
		assert.Equal(t, "one needle\nthree needle\n", out)
	})

	t.Run("inverted", func(t *testing.T) {
		out, status := run(t, haystack, "-v", "needle")
		assert.Equal(t, 0, status)
		assert.Equal(t, "two\nfour\n", out)
	})

	t.Run("line numbers", func(t *testing.T) {
		out, status := run(t, haystack, "-n", "needle")
		assert.Equal(t, 0, status)
		assert.Equal(t, "1:one needle\n3:three needle\n", out)
	})

	t.Run("case insensitive", func(t *testing.T) {
		out, status := run(t, "NEEDLE\n", "-i", "needle")
		assert.Equal(t, 0, status)
		assert.Equal(t, "NEEDLE\n", out)
	})

	t.Run("missing pattern", func(t *testing.T) {
		_, status := run(t, "")
		assert.Equal(t, 2, status)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, status := run(t, "", "(unclosed")
		assert.Equal(t, 2, status)
	})

	t.Run("multiple files prefix matches with the name", func(t *testing.T) {
		cmd := cmdtest.Command(Grep, "grep", "needle", "/a.txt", "/b.txt")
		assert.Nil(t, afero.WriteFile(cmd.FS, "/a.txt", []byte("needle\n"), 0644))
		assert.Nil(t, afero.WriteFile(cmd.FS, "/b.txt", []byte("nothing\nneedle here\n"), 0644))

		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "/a.txt:needle\n/b.txt:needle here\n", string(out))
	})
}
