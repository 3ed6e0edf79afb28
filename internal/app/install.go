package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	ghclient "github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/pipeline"
)

func newInstallCmd() *cobra.Command {
	var (
		tag        string
		force      bool
		fromSource bool
	)

	cmd := &cobra.Command{
		Use:   "install <owner/repo>",
		Short: "Install a tool from its GitHub release assets",
		Long: `Install a tool published as GitHub release assets.

binctl resolves the latest release (or the one named with --tag), picks the
asset matching this machine's OS and architecture, verifies it against any
published checksum file, and installs every executable found in the archive.

When a release ships no compatible asset, binctl can fall back to installing
shebang scripts straight from the source tarball; --from-source requests that
directly.

Examples:
  binctl install junegunn/fzf
  binctl install https://github.com/sharkdp/bat
  binctl install BurntSushi/ripgrep --tag 14.1.0
  binctl install tj/git-extras --from-source`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := ghclient.ParseRepoSpec(args[0])
			if err != nil {
				return err
			}
			runner.Prompt = newPrompter(fromSource)

			fmt.Printf("Installing %s for %s…\n",
				color.WhiteString(owner+"/"+repo), runner.Platform)

			res, err := runner.Install(owner, repo, pipeline.InstallOptions{
				Tag:        tag,
				Force:      force,
				FromSource: fromSource,
			})
			switch {
			case errors.Is(err, pipeline.ErrAlreadyInstalled):
				warn("%v — use --force to reinstall", err)
				return nil
			case errors.Is(err, pipeline.ErrCanceled):
				warn("Canceled.")
				return nil
			}
			if err != nil {
				printAvailableAssets(err)
				return err
			}

			reportInstall(res)
			pathHint()
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Install a specific release tag instead of the latest")
	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even if already installed")
	cmd.Flags().BoolVar(&fromSource, "from-source", false, "Install scripts from the source tarball")
	return cmd
}

func reportInstall(res *pipeline.InstallResult) {
	pkg := res.Package
	if pkg.FromSource() {
		ok("Installed %s %s from source", pkg.Name, pkg.Version)
	} else {
		ok("Installed %s %s (%s)", pkg.Name, pkg.Version, pkg.Asset)
		if res.Verified {
			ok("Checksum verified")
		} else {
			warn("No checksum published — verification skipped")
		}
	}
	for _, b := range pkg.Binaries {
		fmt.Printf("  %s %s\n", color.GreenString("+"), filepath.Join(cfg.BinDir(), b))
	}
}

// printAvailableAssets shows what the release does offer when nothing
// matched this platform.
func printAvailableAssets(err error) {
	var na *pipeline.NoAssetError
	if !errors.As(err, &na) || len(na.Available) == 0 {
		return
	}
	fmt.Println("Available assets:")
	for _, name := range na.Available {
		fmt.Printf("  - %s\n", name)
	}
}

// pathHint nags when the bin directory is missing from PATH.
func pathHint() {
	if pathHasDir(os.Getenv("PATH"), cfg.BinDir()) {
		return
	}
	fmt.Println()
	warn("%s is not on your PATH", cfg.BinDir())
	fmt.Printf("  export PATH=%q\n", cfg.BinDir()+string(os.PathListSeparator)+"$PATH")
}

func pathHasDir(pathEnv, dir string) bool {
	want := filepath.Clean(dir)
	for _, p := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		if p != "" && filepath.Clean(p) == want {
			return true
		}
	}
	return false
}
