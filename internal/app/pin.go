package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <name>",
		Short: "Hold a tool at its installed version",
		Long:  "Pinned tools are skipped by update and upgrade until unpinned (or forced).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(args[0], true)
		},
	}
}

func newUnpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <name>",
		Short: "Let a pinned tool update again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(args[0], false)
		},
	}
}

func setPinned(name string, pinned bool) error {
	found, err := store.SetPinned(name, pinned)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s is not installed", name)
	}
	if pinned {
		pkg, _ := store.Get(name)
		ok("Pinned %s at %s", name, pkg.Version)
	} else {
		ok("Unpinned %s", name)
	}
	return nil
}
