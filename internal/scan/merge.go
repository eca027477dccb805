package scan

import (
	"context"
	"fmt"

	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// Merge executes the recommended strategy for a PR.
//
// Manual recommendations and PRs that are not ready (mergeable, not draft,
// clean) are refused. With dryRun nothing is sent to the provider.
func (s *Scanner) Merge(ctx context.Context, number int, dryRun bool) (*models.MergeResult, error) {
	analysis, err := s.RecommendPR(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.MergeAnalyzed(ctx, *analysis, dryRun)
}

// MergeAnalyzed executes an already computed recommendation
func (s *Scanner) MergeAnalyzed(ctx context.Context, analysis models.PRAnalysis, dryRun bool) (*models.MergeResult, error) {
	facts, rec := analysis.Facts, analysis.Recommendation

	method, ok := rec.Strategy.MergeMethod()
	if !ok {
		return nil, fmt.Errorf("PR #%d: %w", facts.ID, models.ErrManualStrategy)
	}
	if !facts.IsReady() {
		return nil, fmt.Errorf("PR #%d is %s: %w", facts.ID, analysis.Status().Display(), models.ErrNotMergeable)
	}

	if dryRun {
		return &models.MergeResult{
			PrNumber: facts.ID,
			PrTitle:  facts.Title,
			Strategy: rec.Strategy,
			Success:  true,
			Message:  fmt.Sprintf("Would execute %s merge for PR #%d", rec.Strategy.Display(), facts.ID),
			DryRun:   true,
		}, nil
	}

	merger, ok := s.provider.(Merger)
	if !ok {
		return nil, models.ErrMergeNotSupported
	}

	logging.Logger.Info("Merging PR", "pr", facts.ID, "method", method)

	result, err := merger.MergePullRequest(ctx, facts.ID, method)
	if err != nil {
		return nil, fmt.Errorf("failed to merge PR #%d: %w", facts.ID, err)
	}
	result.PrTitle = facts.Title
	result.Strategy = rec.Strategy
	return result, nil
}
