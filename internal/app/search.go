package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search GitHub for repositories to install",
		Long: `Search GitHub repositories by name and description, ordered by stars.

Examples:
  binctl search fzf
  binctl search "json processor" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := gh.SearchRepos(args[0], limit)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			if len(repos) == 0 {
				fmt.Println("No repositories found.")
				return nil
			}
			for _, r := range repos {
				installedMark := ""
				if pkg, found := store.Get(repoNameOf(r.FullName)); found && pkg.Repo == r.FullName {
					installedMark = color.GreenString(" ✓")
				}
				fmt.Printf("  %-32s %8s  %s%s\n",
					color.WhiteString(r.FullName),
					color.YellowString("★ "+compactCount(r.Stars)),
					truncate(r.Description, 60),
					installedMark,
				)
			}
			fmt.Printf("\nInstall with: binctl install <owner/repo>\n")
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results to show")
	return cmd
}

func repoNameOf(fullName string) string {
	if i := strings.LastIndex(fullName, "/"); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

// compactCount renders star counts the way the GitHub UI does: 12345
// becomes 12.3k.
func compactCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
