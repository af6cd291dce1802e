package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picobox/picobox/commands/cmdtest"
)

func TestChmodApplyMode(t *testing.T) {
	blank := fs.FileMode(0)
	file := fs.FileMode(0666)

	cases := []struct {
		orig     fs.FileMode
		mode     string
		wantMode fs.FileMode
		wantErr  error
	}{
		// Permissions
		{blank, "+r", ModeRead, nil},
		{blank, "+w", ModeWrite, nil},
		{blank, "+x", ModeExec, nil},
		{blank, "+rwx", fs.FileMode(0777), nil},

		// No-op permissions
		{blank, "+t", blank, nil},
		{blank, "+s", blank, nil},

		// Capital X, only sets execute if a dir or already has an exec bit
		{blank, "+X", blank, nil},
		{fs.ModeDir, "+X", fs.ModeDir | ModeExec, nil},

		// Groups: a,u,g,o
		{blank, "a+rwx", fs.FileMode(0777), nil},
		{blank, "u+rwx", fs.FileMode(0777) & ModeMaskUser, nil},
		{blank, "g+rwx", fs.FileMode(0777) & ModeMaskGroup, nil},
		{blank, "o+rwx", fs.FileMode(0777) & ModeMaskOther, nil},

		// Actions
		{ModeWrite | ModeRead, "-w", ModeRead, nil},
		{fs.FileMode(0777), "=r", ModeRead, nil},

		// Octal permissions
		{blank, "644", fs.FileMode(0644), nil},

		// Don't wipe non-permission bits
		{fs.ModeDir | fs.ModeSticky, "+x", fs.ModeDir | fs.ModeSticky | ModeExec, nil},
		{fs.ModeDir | fs.ModeSticky, "-x", fs.ModeDir | fs.ModeSticky, nil},
		{fs.ModeDir | fs.ModeSticky, "644", fs.ModeDir | fs.ModeSticky | fs.FileMode(0644), nil},

		// Bad mode expressions
		{file, "o+z", file, errors.New("unknown symbol 'z'")},
		{file, "x", file, errors.New("no action provided")},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("chmod %q %q", tc.mode, tc.orig), func(t *testing.T) {
			gotMode, gotErr := ChmodApplyMode(tc.mode, tc.orig)
			if tc.wantErr != nil {
				require.Error(t, gotErr)
				assert.Equal(t, tc.wantErr.Error(), gotErr.Error())
			} else {
				assert.NoError(t, gotErr)
			}
			assert.Equal(t, tc.wantMode, gotMode)
		})
	}
}

func TestChmod(t *testing.T) {
	t.Run("applies octal modes", func(t *testing.T) {
		cmd := cmdtest.Command(Chmod, "chmod", "755", "/script.sh")
		require.NoError(t, afero.WriteFile(cmd.FS, "/script.sh", []byte("#!/bin/sh\n"), 0644))

		assert.Nil(t, cmd.Run())
		assert.Equal(t, 0, cmd.ExitStatus)

		stat, err := cmd.FS.Stat("/script.sh")
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0755), stat.Mode().Perm())
	})

	t.Run("missing file fails", func(t *testing.T) {
		cmd := cmdtest.Command(Chmod, "chmod", "755", "/nope.sh")
		_, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
	})

	t.Run("not enough arguments", func(t *testing.T) {
		cmd := cmdtest.Command(Chmod, "chmod", "755")
		_, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
	})
}

func TestRmdir(t *testing.T) {
	t.Run("removes empty directories", func(t *testing.T) {
		cmd := cmdtest.Command(Rmdir, "rmdir", "/empty")
		require.NoError(t, cmd.FS.Mkdir("/empty", 0755))

		assert.Nil(t, cmd.Run())
		assert.Equal(t, 0, cmd.ExitStatus)

		ok, err := afero.DirExists(cmd.FS, "/empty")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("refuses non-empty directories", func(t *testing.T) {
		cmd := cmdtest.Command(Rmdir, "rmdir", "/full")
		require.NoError(t, cmd.FS.MkdirAll("/full/sub", 0755))

		_, err := cmd.CombinedOutput()
		assert.Nil(t, err)
		assert.Equal(t, 1, cmd.ExitStatus)
	})
}
