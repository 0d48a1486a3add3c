package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	var sign bool
	var signingKey string

	cmd := &cobra.Command{
		Use:   "merge <branch|commit>",
		Short: "Merge a branch or commit into HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			signer, err := commitSigner(cmd, r, sign, signingKey)
			if err != nil {
				return err
			}

			res, err := r.MergeWithSigner(args[0], signer)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.UpToDate {
				fmt.Fprintln(out, "Already up to date.")
				return nil
			}
			for _, f := range res.Files {
				fmt.Fprintf(out, "  %-6s %s\n", f.Action, f.Path)
			}
			fmt.Fprintf(out, "Merged %s (ancestor %s) as %s\n",
				res.Target.Short(), res.Ancestor.Short(), res.Commit.ID.Short())
			return nil
		},
	}

	cmd.Flags().BoolVar(&sign, "sign", false, "sign the merge commit with an SSH key (default from commit.sign)")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "SSH private key path")
	return cmd
}
