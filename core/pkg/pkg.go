// Package pkg manages installation of .tar.gz packages into the picobox
// configuration directory. A package carries a pkg.json manifest naming the
// binaries to expose; installs are recorded in pkgdb.json.
package pkg

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/juju/ratelimit"
	"github.com/spf13/afero"

	"github.com/picobox/picobox/core/config"
)

// ManifestName is the metadata file every package must carry at its root.
const ManifestName = "pkg.json"

// Manifest is the metadata shipped inside a package archive.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	// Binaries are linked into the bin directory after install.
	Binaries []string `json:"binaries"`
}

// Installed is one record in the package database.
type Installed struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	InstallDate string `json:"install_date"`
	// Path is the directory the package was unpacked into.
	Path string `json:"path"`
}

type database struct {
	Installed []Installed `json:"installed"`
}

// Manager installs, lists and removes packages.
type Manager struct {
	fs     afero.Fs
	cfg    *config.Configuration
	client *http.Client

	// now is replaceable for tests.
	now func() time.Time
}

// NewManager returns a Manager operating on the given filesystem.
func NewManager(fs afero.Fs, cfg *config.Configuration) *Manager {
	return &Manager{
		fs:     fs,
		cfg:    cfg,
		client: http.DefaultClient,
		now:    time.Now,
	}
}

// ensureLayout creates the package directories and an empty database.
func (m *Manager) ensureLayout() error {
	for _, dir := range []string{m.cfg.Dir(), m.cfg.PackagesDir(), m.cfg.BinDir()} {
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if _, err := m.fs.Stat(m.cfg.PackageDBPath()); os.IsNotExist(err) {
		return m.writeDB(&database{Installed: []Installed{}})
	} else if err != nil {
		return err
	}
	return nil
}

func (m *Manager) readDB() (*database, error) {
	contents, err := afero.ReadFile(m.fs, m.cfg.PackageDBPath())
	if os.IsNotExist(err) {
		return &database{}, nil
	}
	if err != nil {
		return nil, err
	}

	var db database
	if err := json.Unmarshal(contents, &db); err != nil {
		return nil, fmt.Errorf("corrupt package database: %w", err)
	}
	return &db, nil
}

func (m *Manager) writeDB(db *database) error {
	contents, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(m.fs, m.cfg.PackageDBPath(), append(contents, '\n'), 0644)
}

// List returns the installed packages in database order.
func (m *Manager) List() ([]Installed, error) {
	db, err := m.readDB()
	if err != nil {
		return nil, err
	}
	return db.Installed, nil
}

// Info returns the record and the top-level files of an installed package.
func (m *Manager) Info(name string) (*Installed, []string, error) {
	db, err := m.readDB()
	if err != nil {
		return nil, nil, err
	}

	for _, rec := range db.Installed {
		if rec.Name != name {
			continue
		}

		var files []string
		if infos, err := afero.ReadDir(m.fs, rec.Path); err == nil {
			for _, fi := range infos {
				files = append(files, fi.Name())
			}
		}
		return &rec, files, nil
	}

	return nil, nil, fmt.Errorf("package %q is not installed", name)
}

// Install unpacks the archive at src, which may be a local path, a URL, or a
// bare name resolved against the configured repository. Progress messages go
// to the given writer.
func (m *Manager) Install(src string, progress io.Writer) (*Installed, error) {
	if err := m.ensureLayout(); err != nil {
		return nil, err
	}

	local := src
	if remote := m.resolveRemote(src); remote != "" {
		downloaded, cleanup, err := m.download(remote, progress)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		local = downloaded
	}

	fd, err := m.fs.Open(local)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	staging, err := afero.TempDir(m.fs, "", "pkg_install_")
	if err != nil {
		return nil, err
	}
	defer m.fs.RemoveAll(staging)

	fmt.Fprintln(progress, "Extracting package...")
	if err := extractTarGz(m.fs, fd, staging); err != nil {
		return nil, fmt.Errorf("extracting %s: %w", src, err)
	}

	manifest, err := readManifest(m.fs, path.Join(staging, ManifestName))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(progress, "Package: %s version %s\n", manifest.Name, manifest.Version)
	fmt.Fprintf(progress, "Description: %s\n", manifest.Description)

	db, err := m.readDB()
	if err != nil {
		return nil, err
	}
	for _, rec := range db.Installed {
		if rec.Name == manifest.Name {
			return nil, fmt.Errorf("package %q is already installed, remove it first to reinstall", manifest.Name)
		}
	}

	installPath := path.Join(m.cfg.PackagesDir(), manifest.Name+"-"+manifest.Version)
	fmt.Fprintf(progress, "Installing to %s...\n", installPath)
	if err := copyTree(m.fs, staging, installPath); err != nil {
		m.fs.RemoveAll(installPath)
		return nil, err
	}

	if err := m.linkBinaries(manifest, installPath, progress); err != nil {
		m.fs.RemoveAll(installPath)
		return nil, err
	}

	rec := Installed{
		Name:        manifest.Name,
		Version:     manifest.Version,
		Description: manifest.Description,
		InstallDate: m.now().Format("2006-01-02 15:04:05"),
		Path:        installPath,
	}
	db.Installed = append(db.Installed, rec)
	if err := m.writeDB(db); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Remove deletes an installed package, its binaries and its database record.
func (m *Manager) Remove(name string) error {
	db, err := m.readDB()
	if err != nil {
		return err
	}

	idx := -1
	for i, rec := range db.Installed {
		if rec.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("package %q is not installed", name)
	}

	rec := db.Installed[idx]

	// Drop binary links that point into the package directory.
	manifest, err := readManifest(m.fs, path.Join(rec.Path, ManifestName))
	if err == nil {
		for _, bin := range manifest.Binaries {
			m.fs.Remove(path.Join(m.cfg.BinDir(), path.Base(bin)))
		}
	}

	if err := m.fs.RemoveAll(rec.Path); err != nil {
		return err
	}

	db.Installed = append(db.Installed[:idx], db.Installed[idx+1:]...)
	return m.writeDB(db)
}

// resolveRemote returns the URL to fetch src from, or "" for local paths.
func (m *Manager) resolveRemote(src string) string {
	if strings.Contains(src, "://") {
		return src
	}
	// Bare names resolve against the configured repository.
	if m.cfg.Pkg.Repository != "" && !strings.ContainsAny(src, "/.") {
		return strings.TrimSuffix(m.cfg.Pkg.Repository, "/") + "/" + src + ".tar.gz"
	}
	return ""
}

// download fetches a package archive into a temp file, throttled by the
// configured rate limit.
func (m *Manager) download(url string, progress io.Writer) (string, func(), error) {
	fmt.Fprintf(progress, "Downloading %s...\n", url)

	response, err := m.client.Get(url)
	if err != nil {
		return "", nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("downloading %s: %s", url, response.Status)
	}

	var body io.Reader = response.Body
	if kbps := m.cfg.Pkg.RateLimitKBps; kbps > 0 {
		rate := float64(kbps) * 1024
		tokenBucket := ratelimit.NewBucketWithRate(rate, int64(rate))
		body = ratelimit.Reader(response.Body, tokenBucket)
	}

	fd, err := afero.TempFile(m.fs, "", "pkg_download_")
	if err != nil {
		return "", nil, err
	}
	name := fd.Name()
	cleanup := func() { m.fs.Remove(name) }

	if _, err := io.Copy(fd, body); err != nil {
		fd.Close()
		cleanup()
		return "", nil, err
	}
	if err := fd.Close(); err != nil {
		cleanup()
		return "", nil, err
	}

	return name, cleanup, nil
}

// linkBinaries exposes the manifest's binaries in the bin directory. Symlinks
// are used where the filesystem supports them, copies otherwise.
func (m *Manager) linkBinaries(manifest *Manifest, installPath string, progress io.Writer) error {
	if len(manifest.Binaries) == 0 {
		return nil
	}

	fmt.Fprintln(progress, "Creating links for binaries:")
	linker, canLink := m.fs.(afero.Linker)

	for _, bin := range manifest.Binaries {
		target := path.Join(installPath, bin)
		linkPath := path.Join(m.cfg.BinDir(), path.Base(bin))

		if _, err := m.fs.Stat(target); err != nil {
			return fmt.Errorf("manifest names missing binary %q", bin)
		}
		if err := m.fs.Chmod(target, 0755); err != nil {
			return err
		}

		m.fs.Remove(linkPath)
		if canLink {
			if err := linker.SymlinkIfPossible(target, linkPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(m.fs, target, linkPath, 0755); err != nil {
				return err
			}
		}

		fmt.Fprintf(progress, "  %s -> %s\n", path.Base(bin), target)
	}

	return nil
}

func readManifest(fs afero.Fs, path string) (*Manifest, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("package has no readable %s: %w", ManifestName, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(contents, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	if manifest.Name == "" || manifest.Version == "" {
		return nil, fmt.Errorf("%s must set name and version", ManifestName)
	}
	return &manifest, nil
}
