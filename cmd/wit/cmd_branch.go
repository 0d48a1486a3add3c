package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one at HEAD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if _, err := r.CreateBranch(args[0]); err != nil {
					return err
				}
				name := strings.ToLower(strings.TrimSpace(args[0]))
				fmt.Fprintf(out, "New branch created: %s\nUse `wit checkout %s` to activate.\n", name, name)
				return nil
			}

			refs, err := r.ReadRefs()
			if err != nil {
				return err
			}
			current, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			for _, name := range refs.BranchNames() {
				marker := "  "
				if name == current {
					marker = "* "
				}
				target := "(no commits)"
				if id := refs.Branches[name]; id != "" {
					target = id.Short()
				}
				fmt.Fprintf(out, "%s%s %s\n", marker, name, target)
			}
			return nil
		},
	}
}
