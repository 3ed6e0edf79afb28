package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newOutdatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "Show installed tools with a newer release available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if store.Len() == 0 {
				fmt.Println("Nothing installed.")
				return nil
			}

			out := runner.Outdated()
			if len(out) == 0 {
				ok("Everything is up to date.")
				return nil
			}
			for _, o := range out {
				pin := ""
				if o.Pinned {
					pin = color.YellowString("  [pinned]")
				}
				fmt.Printf("  %-18s %-12s → %s%s\n",
					color.WhiteString(o.Name),
					o.Current,
					color.GreenString(o.Latest),
					pin,
				)
			}
			fmt.Printf("\n%d package(s) can be updated. Run: binctl upgrade\n", len(out))
			return nil
		},
	}
}
