package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/blackwell-systems/binctl/internal/github"
)

// TextFetcher retrieves a small text resource, best-effort.
// fetch.Client.Text satisfies it.
type TextFetcher func(url string) (string, bool)

// MismatchError means the downloaded archive does not match the digest
// published alongside it. This is the only checksum outcome that fails
// an install.
type MismatchError struct {
	Asset    string
	Expected string
	Computed string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Asset, e.Expected, e.Computed)
}

// sumPatterns match the sumfile naming conventions seen across release
// tooling (goreleaser, cargo-dist, hand-rolled CI). Substring matched
// against lowercased asset names.
var sumPatterns = []string{
	"sha256sums",
	"sha256",
	"checksums",
	"checksums.txt",
}

// Find locates the sumfile asset covering target, if the release ships
// one. The first asset in release order that looks like a sumfile wins.
func Find(assets []github.Asset, target github.Asset) (github.Asset, bool) {
	patterns := append([]string{}, sumPatterns...)
	patterns = append(patterns,
		strings.ToLower(target.Name)+".sha256",
		strings.ToLower(target.Name)+".sha256sum",
	)
	for _, a := range assets {
		name := strings.ToLower(a.Name)
		for _, pat := range patterns {
			if strings.Contains(name, pat) {
				return a, true
			}
		}
	}
	return github.Asset{}, false
}

var (
	// "digest  filename" with an optional binary-mode star: sha256sum output.
	gnuLineRE = regexp.MustCompile(`^([a-fA-F0-9]{64})\s+\*?(.+)$`)
	// "filename: digest".
	bsdLineRE = regexp.MustCompile(`^(.+?):\s*([a-fA-F0-9]{64})`)
)

// Parse scans sumfile content for the line naming filename and returns
// its digest, lowercased. Lines may list bare names or paths
// (dist/tool.tar.gz); both match, case-insensitively. ok=false when no
// line names the file.
func Parse(content, filename string) (string, bool) {
	want := strings.ToLower(filename)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := gnuLineRE.FindStringSubmatch(line); m != nil {
			if nameMatches(m[2], want) {
				return strings.ToLower(m[1]), true
			}
		}
		if m := bsdLineRE.FindStringSubmatch(line); m != nil {
			if nameMatches(m[1], want) {
				return strings.ToLower(m[2]), true
			}
		}
	}
	return "", false
}

func nameMatches(field, want string) bool {
	field = strings.ToLower(strings.TrimSpace(field))
	return field == want || strings.HasSuffix(field, "/"+want)
}

// Verify checks path against the digest published for target in the
// release's sumfile, when one exists. Verification is opportunistic:
// no sumfile, an unfetchable sumfile, or a sumfile that never names the
// target all count as success (verified=false). Only a digest that is
// present and different fails.
func Verify(path string, assets []github.Asset, target github.Asset, text TextFetcher) (verified bool, err error) {
	sums, ok := Find(assets, target)
	if !ok {
		return false, nil
	}
	content, ok := text(sums.BrowserDownloadURL)
	if !ok {
		return false, nil
	}
	expected, ok := Parse(content, target.Name)
	if !ok {
		return false, nil
	}
	computed, err := SHA256File(path)
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(computed, expected) {
		return false, &MismatchError{Asset: target.Name, Expected: expected, Computed: computed}
	}
	return true, nil
}

// SHA256File streams the file through SHA-256 and returns the hex digest.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
