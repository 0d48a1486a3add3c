package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "checkout <branch|commit>",
		Short: "Switch the working tree to a branch or commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			id, err := r.Checkout(args[0], force)
			if err != nil {
				return err
			}

			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			if branch != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to branch '%s' (%s)\n", branch, id.Short())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s (detached)\n", id.Short())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "discard staged and unstaged changes")
	return cmd
}
