package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	ghclient "github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/manifest"
)

const recentReleases = 5

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name|owner/repo>",
		Short: "Show manifest details and recent releases for a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := args[0]

			// A bare name refers to an installed package; anything with a
			// slash (or a URL) is a repo spec and works uninstalled too.
			if pkg, found := store.Get(arg); found && !strings.Contains(arg, "/") {
				printPackage(pkg)
				owner, repo, err := ghclient.ParseRepoSpec(pkg.Repo)
				if err != nil {
					return fmt.Errorf("manifest entry %s: %w", pkg.Name, err)
				}
				return printReleases(owner, repo, pkg.Version)
			}

			owner, repo, err := ghclient.ParseRepoSpec(arg)
			if err != nil {
				return fmt.Errorf("%q is neither an installed package nor a repo spec", arg)
			}
			installed := ""
			if pkg, found := store.Get(repo); found && pkg.Repo == owner+"/"+repo {
				printPackage(pkg)
				installed = pkg.Version
			} else {
				header("%s/%s", owner, repo)
				fmt.Println("  not installed")
				fmt.Println()
			}
			return printReleases(owner, repo, installed)
		},
	}
}

func printPackage(pkg manifest.Package) {
	header("Package: %s", pkg.Name)
	printField("repo", pkg.Repo)
	printField("version", pkg.Version)
	printField("tag", pkg.Tag)
	if pkg.FromSource() {
		printField("source", "script install (no release asset)")
	} else {
		printField("asset", pkg.Asset)
	}
	printField("binaries", strings.Join(pkg.Binaries, ", "))
	if !pkg.InstalledAt.IsZero() {
		printField("installed_at", pkg.InstalledAt.Format("2006-01-02 15:04 MST"))
	}
	if pkg.Pinned {
		printField("pinned", color.YellowString("yes"))
	}
	fmt.Println()
}

func printReleases(owner, repo, installedVersion string) error {
	rels, err := gh.Releases(owner, repo, recentReleases)
	if err != nil {
		return fmt.Errorf("listing releases: %w", err)
	}
	if len(rels) == 0 {
		fmt.Println("No releases.")
		return nil
	}
	header("Recent releases:")
	for _, rel := range rels {
		marks := ""
		if rel.Prerelease {
			marks += color.YellowString("  (prerelease)")
		}
		if installedVersion != "" && rel.Version() == installedVersion {
			marks += color.GreenString("  (installed)")
		}
		date := ""
		if !rel.PublishedAt.IsZero() {
			date = rel.PublishedAt.Format("2006-01-02")
		}
		fmt.Printf("  %-16s %s%s\n", rel.TagName, date, marks)
	}
	return nil
}

func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for n := n / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
