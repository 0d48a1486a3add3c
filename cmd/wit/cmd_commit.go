package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/wit/pkg/repo"
)

func newCommitCmd() *cobra.Command {
	var message string
	var sign bool
	var signingKey string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staging area as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("commit message is required (-m)")
			}

			r, err := openRepo()
			if err != nil {
				return err
			}
			signer, err := commitSigner(cmd, r, sign, signingKey)
			if err != nil {
				return err
			}

			c, err := r.CommitWithSigner(message, signer)
			if err != nil {
				return err
			}

			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			if branch == "" {
				branch = "detached HEAD"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", branch, c.ID.Short(), firstLine(c.Message))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().BoolVar(&sign, "sign", false, "sign the commit with an SSH key (default from commit.sign)")
	cmd.Flags().StringVar(&signingKey, "signing-key", "", "SSH private key path (default: commit.signing_key, then ~/.ssh/id_*)")
	return cmd
}

// commitSigner returns the signer for a new commit, or nil when signing is
// off. Flags override commit.sign and commit.signing_key from config.toml.
func commitSigner(cmd *cobra.Command, r *repo.Repo, sign bool, signingKey string) (repo.CommitSigner, error) {
	cfg, err := r.ReadConfig()
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("sign") {
		sign = cfg.Commit.Sign
	}
	if signingKey == "" {
		signingKey = cfg.Commit.SigningKey
	}
	if !sign {
		return nil, nil
	}

	signer, keyPath, err := newSSHCommitSigner(signingKey)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("key", keyPath).Msg("signing commit")
	return signer, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
