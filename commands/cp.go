package commands

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/proc"
)

// Cp implements the UNIX cp command.
func Cp(p *proc.Proc) int {
	cmd := &SimpleCommand{
		Use:   "cp [-rf] SOURCE DEST",
		Short: "Copy SOURCE to DEST.",
	}

	opts := cmd.Flags()
	recursive := opts.Bool('r', "copy directories recursively")
	opts.BoolLong("recursive", 'R', "copy directories recursively")
	opts.Bool('f', "force overwrite")

	return cmd.RunE(p, func() error {
		args := opts.Args()
		if len(args) != 2 {
			return fmt.Errorf("expected SOURCE and DEST")
		}
		src, dest := args[0], resolveIntoDir(p.FS, args[1], args[0])

		info, err := p.FS.Stat(src)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !*recursive {
				return fmt.Errorf("'%s' is a directory (use -r)", src)
			}
			return copyRecursive(p.FS, src, dest)
		}
		return copyContents(p.FS, src, dest)
	})
}

// resolveIntoDir maps a destination that is an existing directory to a path
// inside it, so "cp file dir" lands at dir/file.
func resolveIntoDir(fs afero.Fs, dest, src string) string {
	if info, err := fs.Stat(dest); err == nil && info.IsDir() {
		return path.Join(dest, path.Base(src))
	}
	return dest
}

func copyContents(fs afero.Fs, src, dest string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyRecursive(fs afero.Fs, src, dest string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyContents(fs, src, dest)
	}

	if err := fs.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs, src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyRecursive(fs, path.Join(src, entry.Name()), path.Join(dest, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

var _ proc.Func = Cp

func init() {
	register("cp", "Copy files and directories.", Cp)
}
