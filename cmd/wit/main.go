package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odvcencio/wit/pkg/repo"
)

const version = "0.1.0"

// logger is set up once per invocation by the root command. Commands that
// run without it (tests executing a subcommand directly) log nothing.
var logger = zerolog.Nop()

func main() {
	root := newRootCmd()
	err := root.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wit:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:           "wit",
		Short:         "A small local version control system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = initLogger(verbose, quiet, configuredLogLevel()).
				With().
				Str("op_id", uuid.NewString()).
				Str("cmd", cmd.Name()).
				Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newCheckoutCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newArchiveCmd())
	root.AddCommand(newVerifyCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wit %s\n", version)
		},
	}
}

// openRepo opens the repository containing the working directory.
func openRepo() (*repo.Repo, error) {
	return repo.Open(".", repo.WithLogger(logger))
}

// configuredLogLevel returns log.level from the enclosing repository's
// config, or "" outside a repository.
func configuredLogLevel() string {
	r, err := repo.Open(".")
	if err != nil {
		return ""
	}
	cfg, err := r.ReadConfig()
	if err != nil {
		return ""
	}
	return cfg.Log.Level
}
