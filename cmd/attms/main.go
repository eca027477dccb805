package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	owner string
	repo  string
	token string
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "attms",
		Short:         "Recommend merge strategies for GitHub pull requests",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupOutput(cmd, flags.debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.owner, "owner", "", "Repository owner (default: config or origin remote)")
	rootCmd.PersistentFlags().StringVar(&flags.repo, "repo", "", "Repository name (default: config or origin remote)")
	rootCmd.PersistentFlags().StringVar(&flags.token, "token", "", "GitHub token (default: $GITHUB_TOKEN or gh auth token)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newAnalyzeCmd(flags),
		newRecommendCmd(flags),
		newMergeCmd(flags),
		newDashboardCmd(flags),
		newDemoCmd(),
		newConfigCmd(),
	)

	return rootCmd
}
