package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/blackwell-systems/binctl/internal/checksum"
	"github.com/blackwell-systems/binctl/internal/extract"
	"github.com/blackwell-systems/binctl/internal/install"
	"github.com/blackwell-systems/binctl/internal/manifest"
	"github.com/blackwell-systems/binctl/internal/platform"
)

// UpdateResult reports a completed update.
type UpdateResult struct {
	Package  manifest.Package
	Previous string
	Verified bool
}

// Update moves an installed package to the latest release. Pinned
// packages and packages already at the latest version are skipped
// unless force is set. The new archive is downloaded and verified
// before any old binary is removed, so a bad download never costs a
// working install.
func (r *Runner) Update(name string, force bool) (*UpdateResult, error) {
	pkg, ok := r.Store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	if pkg.Pinned && !force {
		return nil, fmt.Errorf("%s: %w", name, ErrPinned)
	}

	owner, repo, err := splitRepo(pkg.Repo)
	if err != nil {
		return nil, err
	}
	rel, err := r.Client.LatestRelease(owner, repo)
	if err != nil {
		return nil, err
	}
	if rel.Version() == pkg.Version && !force {
		return nil, fmt.Errorf("%s %s: %w", name, pkg.Version, ErrUpToDate)
	}

	matches := platform.FindBestAssets(rel.Assets, r.Platform)
	if len(matches) == 0 {
		return nil, r.noAsset(rel)
	}
	asset, err := r.chooseAsset(matches)
	if err != nil {
		return nil, err
	}
	r.log().WithField("asset", asset.Name).Debug("selected asset")

	archive, err := r.Fetcher.File(asset.BrowserDownloadURL, r.Cfg.CacheDir(), asset.Name, r.Progress)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archive)

	verified, err := checksum.Verify(archive, rel.Assets, asset, r.Fetcher.Text)
	if err != nil {
		return nil, err
	}

	// Past this point the old binaries are gone. A failure below leaves
	// the package installed with no binaries; reinstalling recovers it.
	if err := install.Uninstall(pkg.Binaries, r.Cfg.BinDir()); err != nil {
		return nil, err
	}

	staging, err := extract.Extract(archive)
	if err != nil {
		return nil, err
	}
	defer extract.Cleanup(staging)

	binaries, err := install.Binaries(staging, r.Cfg.BinDir())
	if err != nil {
		return nil, err
	}
	if len(binaries) == 0 {
		return nil, fmt.Errorf("%s: %w", asset.Name, ErrNoExecutables)
	}

	next := manifest.Package{
		Name:        name,
		Repo:        pkg.Repo,
		Version:     rel.Version(),
		Tag:         rel.TagName,
		InstalledAt: time.Now().UTC(),
		Binaries:    binaries,
		Pinned:      pkg.Pinned,
		Asset:       asset.Name,
	}
	if err := r.Store.Add(next); err != nil {
		return nil, err
	}
	return &UpdateResult{Package: next, Previous: pkg.Version, Verified: verified}, nil
}

// Uninstall removes a package's binaries from the bin directory and
// drops its manifest entry. Binaries already gone are not an error.
func (r *Runner) Uninstall(name string) (*manifest.Package, error) {
	pkg, ok := r.Store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	if err := install.Uninstall(pkg.Binaries, r.Cfg.BinDir()); err != nil {
		return nil, err
	}
	removed, _, err := r.Store.Remove(name)
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// OutdatedPackage pairs an installed version with a newer release.
type OutdatedPackage struct {
	Name    string
	Current string
	Latest  string
	Pinned  bool
}

// Outdated reports every installed package whose latest release is newer
// than the installed version. Packages whose repository cannot be
// checked are skipped, not failed: one dead repo should not hide the
// rest of the report.
func (r *Runner) Outdated() []OutdatedPackage {
	var out []OutdatedPackage
	for _, pkg := range r.Store.List() {
		owner, repo, err := splitRepo(pkg.Repo)
		if err != nil {
			r.log().WithField("package", pkg.Name).WithError(err).Debug("skipping update check")
			continue
		}
		rel, err := r.Client.LatestRelease(owner, repo)
		if err != nil {
			r.log().WithField("package", pkg.Name).WithError(err).Debug("update check failed")
			continue
		}
		if IsNewer(rel.Version(), pkg.Version) {
			out = append(out, OutdatedPackage{
				Name:    pkg.Name,
				Current: pkg.Version,
				Latest:  rel.Version(),
				Pinned:  pkg.Pinned,
			})
		}
	}
	return out
}

// IsNewer reports whether latest is ahead of current. When both strings
// parse as semver the comparison is semantic, so 1.10.0 beats 1.9.0 and
// a republished identical version stays quiet. Otherwise any difference
// counts as newer.
func IsNewer(latest, current string) bool {
	lv, lerr := semver.NewVersion(latest)
	cv, cerr := semver.NewVersion(current)
	if lerr == nil && cerr == nil {
		return lv.GreaterThan(cv)
	}
	return latest != current
}
