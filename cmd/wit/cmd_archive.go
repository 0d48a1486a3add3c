package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newArchiveCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "archive <branch|commit>",
		Short: "Write a commit snapshot as a .tar.zst archive",
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

			if output == "-" {
				return r.Archive(id, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			if err := r.Archive(id, f); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s to %s\n", id.Short(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
