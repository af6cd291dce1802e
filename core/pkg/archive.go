package pkg

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// extractTarGz unpacks a gzipped tarball below dest. Entries that would
// escape dest are rejected.
func extractTarGz(fs afero.Fs, r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		name := path.Clean(header.Name)
		if name == "." {
			continue
		}
		if path.IsAbs(name) || strings.HasPrefix(name, "..") {
			return fmt.Errorf("archive entry escapes destination: %q", header.Name)
		}
		target := path.Join(dest, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, os.FileMode(header.Mode)&os.ModePerm); err != nil {
				return err
			}

		case tar.TypeReg:
			if err := fs.MkdirAll(path.Dir(target), 0755); err != nil {
				return err
			}
			fd, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode)&os.ModePerm)
			if err != nil {
				return err
			}
			if _, err := io.Copy(fd, tr); err != nil {
				fd.Close()
				return err
			}
			if err := fd.Close(); err != nil {
				return err
			}

		default:
			// Links and special files aren't part of the package format.
			continue
		}
	}
}

// copyTree recursively copies the directory src to dest.
func copyTree(fs afero.Fs, src, dest string) error {
	if err := fs.MkdirAll(dest, 0755); err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		from := path.Join(src, entry.Name())
		to := path.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyTree(fs, from, to); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(fs, from, to, entry.Mode()); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(fs afero.Fs, src, dest string, mode os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
