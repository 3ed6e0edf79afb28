package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/binctl/internal/checksum"
	"github.com/blackwell-systems/binctl/internal/extract"
	"github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/install"
	"github.com/blackwell-systems/binctl/internal/manifest"
	"github.com/blackwell-systems/binctl/internal/platform"
)

// InstallOptions tune a single install.
type InstallOptions struct {
	// Tag pins the release to install; empty means latest.
	Tag string
	// Force reinstalls over an existing manifest entry.
	Force bool
	// FromSource skips release assets and installs scripts from the
	// source tarball instead.
	FromSource bool
}

// InstallResult reports what an install recorded.
type InstallResult struct {
	Package manifest.Package
	// Verified is true when the archive digest was checked against a
	// published sumfile, false when no usable checksum existed.
	Verified bool
}

// Install resolves a release of owner/repo, picks the asset matching the
// platform, downloads it into the cache, verifies it when the release
// publishes checksums, extracts it, installs every executable into the
// bin directory and records the package in the manifest. The package
// name is the repository name.
//
// Releases without a compatible asset fall back to installing scripts
// from the source tarball, gated by the prompter; if that is declined
// or yields nothing, the error reports the assets the release does
// offer.
func (r *Runner) Install(owner, repo string, opts InstallOptions) (*InstallResult, error) {
	name := repo
	if pkg, ok := r.Store.Get(name); ok && !opts.Force {
		return nil, fmt.Errorf("%s %s: %w", name, pkg.Version, ErrAlreadyInstalled)
	}

	rel, err := r.resolveRelease(owner, repo, opts.Tag)
	if err != nil {
		return nil, err
	}
	r.log().WithFields(logrus.Fields{
		"repo": owner + "/" + repo,
		"tag":  rel.TagName,
	}).Debug("resolved release")

	if opts.FromSource {
		return r.installFromSource(owner, repo, rel)
	}

	matches := platform.FindBestAssets(rel.Assets, r.Platform)
	if len(matches) == 0 {
		res, err := r.installFromSource(owner, repo, rel)
		if err != nil && (errors.Is(err, ErrCanceled) || errors.Is(err, ErrNoExecutables)) {
			// The fallback went nowhere; the asset gap is the real story.
			return nil, r.noAsset(rel)
		}
		return res, err
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
	if verified {
		r.log().Debug("checksum verified")
	} else {
		r.log().Debug("no usable checksum published, skipping verification")
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

	pkg := manifest.Package{
		Name:        name,
		Repo:        owner + "/" + repo,
		Version:     rel.Version(),
		Tag:         rel.TagName,
		InstalledAt: time.Now().UTC(),
		Binaries:    binaries,
		Asset:       asset.Name,
	}
	if err := r.Store.Add(pkg); err != nil {
		return nil, err
	}
	return &InstallResult{Package: pkg, Verified: verified}, nil
}

// installFromSource downloads the release's source tarball and installs
// shebang scripts out of it. Which scripts get installed is confirmed
// through the prompter before anything lands in the bin directory.
func (r *Runner) installFromSource(owner, repo string, rel *github.Release) (*InstallResult, error) {
	if rel.TarballURL == "" {
		return nil, r.noAsset(rel)
	}

	name := fmt.Sprintf("%s-%s.tar.gz", repo, rel.TagName)
	archive, err := r.Fetcher.File(rel.TarballURL, r.Cfg.CacheDir(), name, r.Progress)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archive)

	staging, err := extract.Extract(archive)
	if err != nil {
		return nil, err
	}
	defer extract.Cleanup(staging)

	ranked, err := extract.FindScripts(staging, repo)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("source tarball: %w", ErrNoExecutables)
	}

	selected := install.Select(ranked, staging, repo)
	preview := make([]string, len(selected))
	for i, s := range selected {
		rp, err := filepath.Rel(staging, s)
		if err != nil {
			rp = filepath.Base(s)
		}
		preview[i] = rp
	}
	ok, err := r.prompter().ConfirmScripts(preview)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("source install: %w", ErrCanceled)
	}

	binaries, err := install.Scripts(selected, r.Cfg.BinDir())
	if err != nil {
		return nil, err
	}

	pkg := manifest.Package{
		Name:        repo,
		Repo:        owner + "/" + repo,
		Version:     rel.Version(),
		Tag:         rel.TagName,
		InstalledAt: time.Now().UTC(),
		Binaries:    binaries,
	}
	if err := r.Store.Add(pkg); err != nil {
		return nil, err
	}
	return &InstallResult{Package: pkg}, nil
}
