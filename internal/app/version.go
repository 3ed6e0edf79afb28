package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/pipeline"
)

// Published releases live here; version --check compares against them.
const (
	selfOwner = "blackwell-systems"
	selfRepo  = "binctl"
)

var appVersion = "dev"

// SetVersion records the build version stamped in by main.
func SetVersion(v string) {
	appVersion = v
}

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the binctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("binctl %s\n", appVersion)
			if !check {
				return nil
			}
			rel, err := gh.LatestRelease(selfOwner, selfRepo)
			if err != nil {
				return fmt.Errorf("checking latest release: %w", err)
			}
			if pipeline.IsNewer(rel.Version(), strings.TrimPrefix(appVersion, "v")) {
				warn("binctl %s is available: %s", rel.Version(), rel.HTMLURL)
			} else {
				ok("binctl is up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer binctl release")
	return cmd
}
