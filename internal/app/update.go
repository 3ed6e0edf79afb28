package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/pipeline"
)

func newUpdateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update an installed tool to its latest release",
		Long: `Update one installed tool to the latest release of its repository.

The new archive is downloaded and verified before the old binaries are
removed, so a failed download never costs a working install. Pinned packages
are skipped unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			runner.Prompt = newPrompter(false)

			res, err := runner.Update(name, force)
			switch {
			case errors.Is(err, pipeline.ErrNotInstalled):
				return fmt.Errorf("%s is not installed", name)
			case errors.Is(err, pipeline.ErrPinned):
				warn("%s is pinned — unpin it or use --force", name)
				return nil
			case errors.Is(err, pipeline.ErrUpToDate):
				ok("%v", err)
				return nil
			}
			if err != nil {
				printAvailableAssets(err)
				return err
			}

			ok("Updated %s %s → %s", name, res.Previous, res.Package.Version)
			if !res.Verified {
				warn("No checksum published — verification skipped")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Update even if pinned or already current")
	return cmd
}
