package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	var all bool
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the commit graph",
		Long: "Print the commit graph as text, JSON, YAML or Graphviz DOT source.\n" +
			"Without --all only the history of HEAD is shown.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render, ok := graphRenderers[format]
			if !ok {
				return fmt.Errorf("unknown graph format %q (want text, json, yaml or dot)", format)
			}

			r, err := openRepo()
			if err != nil {
				return err
			}
			g, err := r.Graph(all)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include every stored commit")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or dot")
	return cmd
}
