//go:build linux
// +build linux

package commands

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobox/picobox/commands/cmdtest"
)

func TestStat(t *testing.T) {
	t.Run("reports file status", func(t *testing.T) {
		cmd := cmdtest.Command(Stat, "stat", "/f.txt")
		require.NoError(t, afero.WriteFile(cmd.FS, "/f.txt", []byte("12345"), 0644))
		require.NoError(t, cmd.FS.Chmod("/f.txt", 0644))
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)

		got := string(out)
		assert.Contains(t, got, "  File: /f.txt\n")
		assert.Contains(t, got, "  Size: 5\n")
		assert.Contains(t, got, "  Mode: 0644\n")
		assert.Contains(t, got, "Modify: ")
	})

	t.Run("continues past missing files", func(t *testing.T) {
		cmd := cmdtest.Command(Stat, "stat", "/absent", "/f.txt")
		require.NoError(t, afero.WriteFile(cmd.FS, "/f.txt", []byte("x"), 0644))
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "  File: /f.txt\n")
	})

	t.Run("no operands", func(t *testing.T) {
		cmd := cmdtest.Command(Stat, "stat")
		assert.Nil(t, cmd.Run())
		assert.Equal(t, 0, cmd.ExitStatus)
	})
}

func TestDu(t *testing.T) {
	t.Run("single file in kilobyte blocks", func(t *testing.T) {
		cmd := cmdtest.Command(Du, "du", "/f.bin")
		require.NoError(t, afero.WriteFile(cmd.FS, "/f.bin", make([]byte, 2048), 0644))
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, "2\t/f.bin\n", string(out))
	})

	t.Run("human readable", func(t *testing.T) {
		cmd := cmdtest.Command(Du, "du", "-h", "/f.bin")
		require.NoError(t, afero.WriteFile(cmd.FS, "/f.bin", make([]byte, 2048), 0644))
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Equal(t, fmt.Sprintf("%s\t/f.bin\n", BytesToHuman(2048)), string(out))
	})

	t.Run("directory totals include children", func(t *testing.T) {
		cmd := cmdtest.Command(Du, "du", "/dir")
		require.NoError(t, afero.WriteFile(cmd.FS, "/dir/a.bin", make([]byte, 1024), 0644))
		require.NoError(t, afero.WriteFile(cmd.FS, "/dir/sub/b.bin", make([]byte, 4096), 0644))
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)

		var kb int64
		var name string
		_, scanErr := fmt.Sscanf(string(out), "%d\t%s", &kb, &name)
		require.NoError(t, scanErr)
		assert.Equal(t, "/dir", name)
		assert.GreaterOrEqual(t, kb, int64(5))
	})

	t.Run("missing path", func(t *testing.T) {
		cmd := cmdtest.Command(Du, "du", "/absent")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "du: /absent")
	})
}

func TestDf(t *testing.T) {
	t.Run("reports the current filesystem", func(t *testing.T) {
		cmd := cmdtest.Command(Df, "df")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Contains(t, string(out), "Filesystem     1K-blocks      Used Available Use%\n")
		assert.Contains(t, string(out), ".")
	})

	t.Run("human readable header", func(t *testing.T) {
		cmd := cmdtest.Command(Df, "df", "-h")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 0, cmd.ExitStatus)
		assert.Contains(t, string(out), "Filesystem     Size  Used Avail Use%\n")
	})

	t.Run("missing path", func(t *testing.T) {
		cmd := cmdtest.Command(Df, "df", "/definitely/not/here")
		out, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
		assert.Contains(t, string(out), "df:")
	})
}
