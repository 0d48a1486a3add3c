package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/wit/pkg/object"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [branch|commit]",
		Short: "Show first-parent history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			var start object.ID
			if len(args) == 1 {
				if start, _, err = r.Resolve(args[0]); err != nil {
					return err
				}
			}
			commits, err := r.Log(start, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, c := range commits {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "commit %s\n", c.ID)
				if c.IsMerge() {
					fmt.Fprintf(out, "Merge: %s %s\n", c.Parents[0].Short(), c.Parents[1].Short())
				}
				fmt.Fprintf(out, "Date:   %s\n", c.Date.Format(object.DateLayout))
				if c.Signature != "" {
					fmt.Fprintln(out, "Signed: yes")
				}
				fmt.Fprintf(out, "\n    %s\n", c.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit the number of commits (0 = all)")
	return cmd
}
