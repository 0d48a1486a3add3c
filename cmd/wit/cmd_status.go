package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}
			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case branch == "":
				fmt.Fprintln(out, "HEAD detached")
			case st.CurrentCommit == "":
				fmt.Fprintf(out, "on %s (no commits yet)\n", branch)
			default:
				fmt.Fprintf(out, "on %s\n", branch)
			}

			current := "None"
			if st.CurrentCommit != "" {
				current = string(st.CurrentCommit)
			}
			fmt.Fprintf(out, "\nCurrent commit:\n\t%s\n", current)
			printSection(out, "Changes to be committed:", st.Staged)
			printSection(out, "Changes not staged for commit:", st.Unstaged)
			printSection(out, "Untracked files:", st.Untracked)
			return nil
		},
	}
}

func printSection(out io.Writer, title string, paths []string) {
	fmt.Fprintf(out, "\n%s\n", title)
	if len(paths) == 0 {
		fmt.Fprintln(out, "\tNone")
		return
	}
	for _, p := range paths {
		fmt.Fprintf(out, "\t%s\n", p)
	}
}
