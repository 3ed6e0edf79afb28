package platform

import (
	"strings"

	"github.com/blackwell-systems/binctl/internal/github"
)

const noMatch = -1

// Companion files that never contain an executable.
var skipSuffixes = []string{".txt", ".md", ".sha256", ".sig", ".asc", ".sbom"}

// Name fragments release authors use per OS. Matching is plain substring
// search over the lowercased asset name, so the fragments are
// deliberately coarse.
var osPatterns = map[string][]string{
	"darwin":  {"darwin", "macos", "mac", "osx", "apple"},
	"linux":   {"linux"},
	"windows": {"windows", "win", "win64", "win32"},
}

var archPatterns = map[string][]string{
	"amd64": {"amd64", "x86_64", "x64", "64bit"},
	"arm64": {"arm64", "aarch64"},
	"386":   {"386", "i386", "i686", "x86", "32bit"},
}

// Markers for assets meant to run anywhere (scripts, JARs, fat binaries).
var universalMarkers = []string{"universal", "any", "all"}

// Score rates how well an asset name fits the platform. Higher is better.
// A negative score means the asset cannot run here at all: either it is a
// companion file, or it names neither this OS nor a universal build.
//
// Weights: OS hit 100, arch hit 50, both 25 extra, universal surrogate
// 10, then a small format preference (tar.gz 10, zip 8, tar.xz 6) so
// archives win over raw binaries at equal specificity.
func Score(name string, p Info) int {
	lower := strings.ToLower(name)

	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return noMatch
		}
	}

	score := 0

	osMatched := false
	for _, pat := range osPatterns[p.OS] {
		if strings.Contains(lower, pat) {
			score += 100
			osMatched = true
			break
		}
	}

	archMatched := false
	for _, pat := range archPatterns[p.Arch] {
		if strings.Contains(lower, pat) {
			score += 50
			archMatched = true
			break
		}
	}

	if !osMatched {
		universal := false
		for _, marker := range universalMarkers {
			if strings.Contains(lower, marker) {
				universal = true
				break
			}
		}
		if !universal {
			return noMatch
		}
		score += 10
	}

	if osMatched && archMatched {
		score += 25
	}

	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		score += 10
	case strings.HasSuffix(lower, ".zip"):
		score += 8
	case strings.HasSuffix(lower, ".tar.xz"):
		score += 6
	}

	return score
}

// FindBestAssets returns every asset tied for the best score, in release
// order. More than one entry means the release offers equally plausible
// builds (musl vs glibc, static vs dynamic) and the caller should let
// the user pick. Empty means nothing can run on this platform.
func FindBestAssets(assets []github.Asset, p Info) []github.Asset {
	scores := make([]int, len(assets))
	best := noMatch
	for i, a := range assets {
		scores[i] = Score(a.Name, p)
		if scores[i] > best {
			best = scores[i]
		}
	}
	if best < 0 {
		return nil
	}
	var out []github.Asset
	for i, a := range assets {
		if scores[i] == best {
			out = append(out, a)
		}
	}
	return out
}
