package pipeline

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/binctl/internal/platform"
)

// Sentinel errors for conditions the CLI turns into hints rather than
// failures. Callers classify with errors.Is.
var (
	ErrAlreadyInstalled = errors.New("already installed")
	ErrNotInstalled     = errors.New("not installed")
	ErrPinned           = errors.New("pinned")
	ErrUpToDate         = errors.New("already up to date")
	ErrNoExecutables    = errors.New("no executables found in archive")
	ErrCanceled         = errors.New("canceled")
)

// NoAssetError reports a release with no asset usable on the current
// platform. Available carries the release's asset names so the caller
// can show what the project does publish.
type NoAssetError struct {
	Platform  platform.Info
	Available []string
}

func (e *NoAssetError) Error() string {
	return fmt.Sprintf("no compatible binary for %s", e.Platform)
}
