// Package pipeline runs package operations end to end: resolve a
// release, pick an asset, download, verify, extract, install, record.
// It performs no terminal I/O of its own. Choices reach the user
// through a Prompter, download activity through a progress callback,
// and diagnostics through logrus, so the same code serves the CLI and
// the tests.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blackwell-systems/binctl/internal/config"
	"github.com/blackwell-systems/binctl/internal/fetch"
	"github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/manifest"
	"github.com/blackwell-systems/binctl/internal/platform"
)

// Runner holds the collaborators an operation needs. Zero fields are
// not usable; populate every field except Prompt, Progress and Log,
// which fall back to silent defaults.
type Runner struct {
	Client   *github.Client
	Fetcher  *fetch.Client
	Store    *manifest.Store
	Cfg      *config.Config
	Platform platform.Info
	Prompt   Prompter
	Progress fetch.Progress
	Log      *logrus.Logger
}

func (r *Runner) prompter() Prompter {
	if r.Prompt != nil {
		return r.Prompt
	}
	return AutoPrompter{}
}

func (r *Runner) log() *logrus.Logger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

func (r *Runner) resolveRelease(owner, repo, tag string) (*github.Release, error) {
	if tag != "" {
		return r.Client.ReleaseByTag(owner, repo, tag)
	}
	return r.Client.LatestRelease(owner, repo)
}

// chooseAsset settles ties between equally scored assets through the
// prompter. A single match never prompts.
func (r *Runner) chooseAsset(matches []github.Asset) (github.Asset, error) {
	if len(matches) == 1 {
		return matches[0], nil
	}
	idx, err := r.prompter().SelectAsset(matches)
	if err != nil {
		return github.Asset{}, err
	}
	if idx < 0 || idx >= len(matches) {
		return github.Asset{}, fmt.Errorf("asset choice %d out of range", idx)
	}
	return matches[idx], nil
}

func (r *Runner) noAsset(rel *github.Release) error {
	names := make([]string, len(rel.Assets))
	for i, a := range rel.Assets {
		names[i] = a.Name
	}
	return &NoAssetError{Platform: r.Platform, Available: names}
}

// splitRepo splits an "owner/repo" value recorded in the manifest.
func splitRepo(full string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("malformed repo %q in manifest", full)
	}
	return owner, repo, nil
}
