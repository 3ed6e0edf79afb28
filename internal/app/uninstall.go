package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/pipeline"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <name>",
		Short: "Remove an installed tool and its manifest entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := runner.Uninstall(args[0])
			if errors.Is(err, pipeline.ErrNotInstalled) {
				return fmt.Errorf("%s is not installed", args[0])
			}
			if err != nil {
				return err
			}
			ok("Uninstalled %s %s", pkg.Name, pkg.Version)
			for _, b := range pkg.Binaries {
				fmt.Printf("  %s %s\n", color.RedString("-"), filepath.Join(cfg.BinDir(), b))
			}
			return nil
		},
	}
}
