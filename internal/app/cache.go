package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/util"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
	}
	cmd.AddCommand(newCacheCleanCmd())
	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete leftover downloads",
		Long: `Delete everything in the cache directory.

Installs stream archives through the cache and remove them when done, so the
cache only grows when a run is interrupted. clean reclaims that space.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := util.DirSize(cfg.CacheDir())
			if err != nil {
				return fmt.Errorf("sizing cache: %w", err)
			}
			if err := os.RemoveAll(cfg.CacheDir()); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			ok("Cache cleared — %s freed", humanBytes(size))
			return nil
		},
	}
}
