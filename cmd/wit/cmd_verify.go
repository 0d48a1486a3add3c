package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <branch|commit>",
		Short: "Verify the SSH signature of a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			id, _, err := r.Resolve(args[0])
			if err != nil {
				return err
			}
			c, err := r.Store.ReadCommit(id)
			if err != nil {
				return err
			}

			pub, err := verifyCommitSignature(c)
			if err != nil {
				return fmt.Errorf("verify %s: %w", id.Short(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s signed with %s %s\n",
				id.Short(), pub.Type(), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
