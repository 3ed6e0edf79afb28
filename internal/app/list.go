package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type listEntry struct {
	Name        string   `json:"name"`
	Repo        string   `json:"repo"`
	Version     string   `json:"version"`
	Tag         string   `json:"tag"`
	Asset       string   `json:"asset,omitempty"`
	FromSource  bool     `json:"from_source,omitempty"`
	Binaries    []string `json:"binaries"`
	Pinned      bool     `json:"pinned,omitempty"`
	InstalledAt string   `json:"installed_at,omitempty"`
}

func newListCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed tools",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs := store.List()

			if jsonOut {
				entries := make([]listEntry, 0, len(pkgs))
				for _, pkg := range pkgs {
					e := listEntry{
						Name:       pkg.Name,
						Repo:       pkg.Repo,
						Version:    pkg.Version,
						Tag:        pkg.Tag,
						Asset:      pkg.Asset,
						FromSource: pkg.FromSource(),
						Binaries:   pkg.Binaries,
						Pinned:     pkg.Pinned,
					}
					if !pkg.InstalledAt.IsZero() {
						e.InstalledAt = pkg.InstalledAt.Format(time.RFC3339)
					}
					entries = append(entries, e)
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			if len(pkgs) == 0 {
				fmt.Println("No packages installed. Try: binctl install junegunn/fzf")
				return nil
			}

			for _, pkg := range pkgs {
				src := pkg.Asset
				if pkg.FromSource() {
					src = "(source)"
				}
				pin := ""
				if pkg.Pinned {
					pin = color.YellowString("  [pinned]")
				}
				fmt.Printf("  %-18s %-10s %-26s %s%s\n",
					color.WhiteString(pkg.Name),
					pkg.Version,
					pkg.Repo,
					src,
					pin,
				)
				fmt.Printf("  %-18s %s\n", "", color.HiBlackString("bin: "+strings.Join(pkg.Binaries, ", ")))
			}
			fmt.Printf("\n%d package(s) installed\n", len(pkgs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
