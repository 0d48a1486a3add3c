package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/wit/pkg/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty wit repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			r, err := repo.Init(path, repo.WithLogger(logger))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty wit repository in %s\n", r.WitDir)
			return nil
		},
	}
}
