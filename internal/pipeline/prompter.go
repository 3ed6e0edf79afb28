package pipeline

import "github.com/blackwell-systems/binctl/internal/github"

// Prompter answers the two questions an install can raise. The CLI
// provides a terminal implementation; tests and non-interactive runs
// provide canned answers.
type Prompter interface {
	// SelectAsset picks one of several equally matched release assets,
	// returning an index into assets.
	SelectAsset(assets []github.Asset) (int, error)

	// ConfirmScripts approves installing the listed scripts out of a
	// source tarball. The paths are relative to the archive root.
	ConfirmScripts(scripts []string) (bool, error)
}

// AutoPrompter answers without asking: the first asset wins ties, and
// script installs get a fixed yes or no.
type AutoPrompter struct {
	AcceptScripts bool
}

func (a AutoPrompter) SelectAsset(assets []github.Asset) (int, error) {
	return 0, nil
}

func (a AutoPrompter) ConfirmScripts(scripts []string) (bool, error) {
	return a.AcceptScripts, nil
}
