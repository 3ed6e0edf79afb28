package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the manifest schema version written to disk.
const Version = 1

// Package records one installed tool.
type Package struct {
	Name        string    `yaml:"-"` // map key, not repeated in the entry
	Repo        string    `yaml:"repo"`
	Version     string    `yaml:"version"`
	Tag         string    `yaml:"tag"`
	InstalledAt time.Time `yaml:"installed_at"`
	Binaries    []string  `yaml:"binaries"`
	Pinned      bool      `yaml:"pinned"`
	Asset       string    `yaml:"asset"` // empty for source installs
}

// FromSource reports whether the package was installed from a source
// tarball rather than a prebuilt release asset.
func (p Package) FromSource() bool {
	return p.Asset == ""
}

type document struct {
	Version  int                `yaml:"version"`
	Packages map[string]Package `yaml:"packages"`
}

// Store is the on-disk manifest of installed packages. Every mutation
// rewrites the whole file through a temp-and-rename, so a crash leaves
// either the old manifest or the new one, never a torn file. Access is
// load-modify-save from a single process; concurrent binctl invocations
// are not coordinated.
type Store struct {
	path     string
	packages map[string]Package
}

// Load reads the manifest at path. A missing or empty file is a valid
// empty manifest. Entries missing optional fields decode to zero values
// rather than failing, so older manifests keep working.
func Load(path string) (*Store, error) {
	s := &Store{path: path, packages: map[string]Package{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	for name, pkg := range doc.Packages {
		pkg.Name = name
		s.packages[name] = pkg
	}
	return s, nil
}

// Save writes the manifest back to disk atomically.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: Version, Packages: s.packages}); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Get returns the package by name.
func (s *Store) Get(name string) (Package, bool) {
	pkg, ok := s.packages[name]
	return pkg, ok
}

// Has reports whether a package is installed.
func (s *Store) Has(name string) bool {
	_, ok := s.packages[name]
	return ok
}

// Add inserts or replaces a package and saves.
func (s *Store) Add(pkg Package) error {
	s.packages[pkg.Name] = pkg
	return s.Save()
}

// Remove deletes a package by name and saves. The removed entry comes
// back so callers can report what was uninstalled.
func (s *Store) Remove(name string) (Package, bool, error) {
	pkg, ok := s.packages[name]
	if !ok {
		return Package{}, false, nil
	}
	delete(s.packages, name)
	return pkg, true, s.Save()
}

// SetPinned flips the pin flag on a package and saves. Returns false
// when the package is not installed.
func (s *Store) SetPinned(name string, pinned bool) (bool, error) {
	pkg, ok := s.packages[name]
	if !ok {
		return false, nil
	}
	pkg.Pinned = pinned
	s.packages[name] = pkg
	return true, s.Save()
}

// List returns all packages sorted by name.
func (s *Store) List() []Package {
	out := make([]Package, 0, len(s.packages))
	for _, pkg := range s.packages {
		out = append(out, pkg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports how many packages are installed.
func (s *Store) Len() int {
	return len(s.packages)
}
