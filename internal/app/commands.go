package app

import (
	"context"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/scan"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type analysisLoadedResult struct {
	analysis *models.RepositoryAnalysis
	err      error
}

type mergeCompleteResult struct {
	result *models.MergeResult
	err    error
}

// Commands

func scanCmd(ctx context.Context, scanner *scan.Scanner) tea.Cmd {
	return func() tea.Msg {
		analysis, err := scanner.AnalyzeRepository(ctx)
		return analysisLoadedResult{analysis: analysis, err: err}
	}
}

func mergeCmd(ctx context.Context, scanner *scan.Scanner, pr models.PRAnalysis, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		result, err := scanner.MergeAnalyzed(ctx, pr, dryRun)
		return mergeCompleteResult{result: result, err: err}
	}
}
