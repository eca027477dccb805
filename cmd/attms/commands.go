package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.mergestrategy/internal/app"
	"github.com/wahlandcase/attuned.mergestrategy/internal/config"
	"github.com/wahlandcase/attuned.mergestrategy/internal/fixtures"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/report"
	"github.com/wahlandcase/attuned.mergestrategy/internal/scan"
	"github.com/wahlandcase/attuned.mergestrategy/internal/ui"
)

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze open PRs and print a Markdown merge report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(flags)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "🔍 Analyzing %s/%s...\n", s.owner, s.repo)

			analysis, err := s.scanner.AnalyzeRepository(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Render(*analysis))

			path := output
			if path == "" {
				path = s.cfg.AnalysisPath()
			}
			if err := report.WriteAnalysis(path, *analysis); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "📄 Analysis saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON output file (default: [output] analysis_file)")
	return cmd
}

func newRecommendCmd(flags *globalFlags) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a merge strategy for one PR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if number <= 0 {
				return fmt.Errorf("--pr must be a positive PR number")
			}

			s, err := newSession(flags)
			if err != nil {
				return err
			}

			analysis, err := s.scanner.RecommendPR(cmd.Context(), number)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.RenderRecommendation(analysis.Facts, analysis.Recommendation))
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "PR number")
	_ = cmd.MarkFlagRequired("pr")
	return cmd
}

func newMergeCmd(flags *globalFlags) *cobra.Command {
	var (
		number int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge one PR with its recommended strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if number <= 0 {
				return fmt.Errorf("--pr must be a positive PR number")
			}

			s, err := newSession(flags)
			if err != nil {
				return err
			}

			result, err := s.scanner.Merge(cmd.Context(), number, dryRun)
			if err != nil {
				return err
			}

			printMergeResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "PR number")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the merge that would run without executing it")
	_ = cmd.MarkFlagRequired("pr")
	return cmd
}

func printMergeResult(cmd *cobra.Command, result *models.MergeResult) {
	okStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)

	icon := okStyle.Render("✓")
	if result.DryRun {
		icon = lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true).Render("⚠")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", icon, result.Message)
	if result.SHA != "" {
		commit := models.CommitInfo{SHA: result.SHA}
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("  commit "+commit.ShortSHA()))
	}
}

func newDashboardCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard of open PRs and their recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(flags)
			if err != nil {
				return err
			}
			return runDashboard(cmd, s.scanner, s.owner, s.repo, dryRun, flags.debug)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate merges without making changes")
	return cmd
}

func runDashboard(cmd *cobra.Command, scanner *scan.Scanner, owner, repo string, dryRun, debug bool) error {
	restore, err := redirectLogs(debug)
	if err != nil {
		return err
	}
	defer restore()

	model := app.New(cmd.Context(), scanner, owner, repo, dryRun)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func newDemoCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the analysis on built-in sample PRs (no token needed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := scan.New(fixtures.Demo(), fixtures.DemoOwner, fixtures.DemoRepo, scan.Options{})

			if interactive {
				debug, _ := cmd.Flags().GetBool("debug")
				return runDashboard(cmd, scanner, fixtures.DemoOwner, fixtures.DemoRepo, false, debug)
			}

			analysis, err := scanner.AnalyzeRepository(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Render(*analysis))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the sample PRs in the dashboard")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			// Creates the file with defaults on first use
			if _, err := loadConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
