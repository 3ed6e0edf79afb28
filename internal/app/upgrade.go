package app

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/pipeline"
)

func newUpgradeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Update every installed tool",
		Long: `Update every installed tool to its latest release.

Pinned packages are skipped unless --force is given. A tool that fails to
update does not stop the rest; failures are reported at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs := store.List()
			if len(pkgs) == 0 {
				fmt.Println("Nothing installed.")
				return nil
			}

			updated, failed := 0, 0
			for _, pkg := range pkgs {
				res, err := runner.Update(pkg.Name, force)
				switch {
				case errors.Is(err, pipeline.ErrPinned):
					fmt.Printf("  %s %-20s pinned at %s\n",
						color.YellowString("•"), pkg.Name, pkg.Version)
					continue
				case errors.Is(err, pipeline.ErrUpToDate):
					fmt.Printf("  %s %-20s %s\n",
						color.GreenString("="), pkg.Name, pkg.Version)
					continue
				case err != nil:
					failed++
					warn("%s: %v", pkg.Name, err)
					continue
				}
				updated++
				ok("%s %s → %s", pkg.Name, res.Previous, res.Package.Version)
			}

			if updated > 0 {
				fmt.Printf("\n%d package(s) updated\n", updated)
			} else if failed == 0 {
				fmt.Println("\nEverything is up to date.")
			}
			if failed > 0 {
				return fmt.Errorf("%d package(s) failed to update", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Update pinned packages and reinstall current versions")
	return cmd
}
