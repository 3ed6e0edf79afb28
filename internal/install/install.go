package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/binctl/internal/extract"
	"github.com/blackwell-systems/binctl/internal/util"
)

// Binaries copies every executable found under stagingDir into binDir,
// flattened to basenames, and marks them executable. Returns installed
// names in walk order; duplicate basenames overwrite each other and are
// recorded once.
func Binaries(stagingDir, binDir string) ([]string, error) {
	if err := util.EnsureDir(binDir); err != nil {
		return nil, err
	}
	execs, err := extract.FindExecutables(stagingDir)
	if err != nil {
		return nil, err
	}
	return copyAll(execs, binDir)
}

// maxScriptDepth bounds how deep in a source tree an installable script
// may sit. GitHub tarballs add one top-level directory, so depth 3 still
// reaches scripts one folder into the repo.
const maxScriptDepth = 3

// Select narrows ranked scripts from an unpacked source tree down to the
// set worth installing. ranked comes from extract.FindScripts. Selection
// works in three steps: every script at depth <= 3; failing that, the
// single script whose stem matches repoName; failing that, the
// top-ranked script alone.
func Select(ranked []string, stagingDir, repoName string) []string {
	if len(ranked) == 0 {
		return nil
	}
	return selectScripts(ranked, stagingDir, repoName)
}

// Scripts installs the given script files into binDir, flattened to
// basenames and marked executable.
func Scripts(scripts []string, binDir string) ([]string, error) {
	if len(scripts) == 0 {
		return nil, nil
	}
	if err := util.EnsureDir(binDir); err != nil {
		return nil, err
	}
	return copyAll(scripts, binDir)
}

func selectScripts(ranked []string, root, repoName string) []string {
	var shallow []string
	for _, s := range ranked {
		if extract.Depth(root, s) <= maxScriptDepth {
			shallow = append(shallow, s)
		}
	}
	if len(shallow) > 0 {
		return shallow
	}
	want := strings.ToLower(repoName)
	for _, s := range ranked {
		name := strings.ToLower(filepath.Base(s))
		if strings.TrimSuffix(name, filepath.Ext(name)) == want {
			return []string{s}
		}
	}
	return ranked[:1]
}

// Uninstall removes the named binaries from binDir. Missing files are
// fine, so uninstall is idempotent and a half-finished update can be
// cleaned up by running it again.
func Uninstall(binaries []string, binDir string) error {
	for _, name := range binaries {
		path := filepath.Join(binDir, filepath.Base(name))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func copyAll(paths []string, binDir string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, src := range paths {
		name := filepath.Base(src)
		if err := installOne(src, filepath.Join(binDir, name)); err != nil {
			return nil, err
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

func installOne(src, dst string) error {
	if err := util.CopyFile(src, dst); err != nil {
		return err
	}
	info, err := os.Stat(dst)
	if err != nil {
		return err
	}
	// Archives do not always carry the exec bit.
	return os.Chmod(dst, info.Mode().Perm()|0111)
}
