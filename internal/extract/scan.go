package extract

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

var machoMagics = [][]byte{
	{0xfe, 0xed, 0xfa, 0xce}, // 32-bit
	{0xfe, 0xed, 0xfa, 0xcf}, // 64-bit
	{0xca, 0xfe, 0xba, 0xbe}, // universal
	{0xcf, 0xfa, 0xed, 0xfe}, // 64-bit, reversed
	{0xce, 0xfa, 0xed, 0xfe}, // 32-bit, reversed
}

// IsExecutable reports whether path looks like something that belongs on
// PATH: either the exec bit is set, or the content opens with a known
// executable magic (ELF, Mach-O, PE, shebang). Archives routinely ship
// binaries without the exec bit, so the magic check is not optional.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Mode().Perm()&0111 != 0 {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 4)
	n, _ := io.ReadFull(f, head)
	return hasExecMagic(head[:n])
}

func hasExecMagic(head []byte) bool {
	if len(head) >= 4 {
		if bytes.Equal(head[:4], elfMagic) {
			return true
		}
		for _, m := range machoMagics {
			if bytes.Equal(head[:4], m) {
				return true
			}
		}
	}
	if len(head) >= 2 {
		if head[0] == 'M' && head[1] == 'Z' {
			return true
		}
		if head[0] == '#' && head[1] == '!' {
			return true
		}
	}
	return false
}

// IsScript reports whether path starts with a shebang.
func IsScript(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 2)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return head[0] == '#' && head[1] == '!'
}

// FindExecutables walks root and returns every executable file, in
// lexical walk order.
func FindExecutables(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsExecutable(path) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// Directory names that hold support material rather than the tool itself.
var scriptDirExcludes = map[string]bool{
	"test": true, "tests": true, "spec": true, "specs": true,
	"example": true, "examples": true, "doc": true, "docs": true,
	"build": true, "dist": true, ".git": true, ".github": true,
	"node_modules": true, "vendor": true, "__pycache__": true,
}

// Extensions that are data or prose even when a shebang-like line sneaks in.
var scriptExtExcludes = map[string]bool{
	".md": true, ".txt": true, ".rst": true, ".json": true,
	".yaml": true, ".yml": true, ".toml": true,
}

// FindScripts returns shebang scripts under root, best candidate first:
// scripts whose stem equals repoName, then shallower paths, then
// lexicographic name. Support directories (tests, docs, examples...) and
// data extensions are skipped entirely.
func FindScripts(root, repoName string) ([]string, error) {
	var scripts []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && scriptDirExcludes[strings.ToLower(d.Name())] {
				return filepath.SkipDir
			}
			return nil
		}
		if scriptDirExcludes[strings.ToLower(d.Name())] {
			return nil
		}
		if scriptExtExcludes[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		if IsScript(path) {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	wantStem := strings.ToLower(repoName)
	sort.SliceStable(scripts, func(i, j int) bool {
		ki, kj := scriptSortKey(root, scripts[i], wantStem), scriptSortKey(root, scripts[j], wantStem)
		if ki.nameMiss != kj.nameMiss {
			return ki.nameMiss < kj.nameMiss
		}
		if ki.depth != kj.depth {
			return ki.depth < kj.depth
		}
		return ki.name < kj.name
	})
	return scripts, nil
}

type scriptKey struct {
	nameMiss int // 0 when the stem matches the repo name
	depth    int
	name     string
}

func scriptSortKey(root, path, wantStem string) scriptKey {
	name := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	miss := 1
	if wantStem != "" && stem == wantStem {
		miss = 0
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return scriptKey{
		nameMiss: miss,
		depth:    len(strings.Split(rel, string(os.PathSeparator))),
		name:     name,
	}
}

// Depth returns how many path components separate path from root; a file
// directly under root has depth 1. Unrelated paths report a large depth
// so they never look attractive.
func Depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return 1 << 10
	}
	return len(strings.Split(rel, string(os.PathSeparator)))
}
