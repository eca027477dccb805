package scan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/strategy"
)

const (
	DefaultConcurrency       = 4
	DefaultOpenPRLimit       = 10
	DefaultPatternSampleSize = 20
)

// Options tunes a Scanner; zero values fall back to the defaults
type Options struct {
	Concurrency       int
	OpenPRLimit       int
	PatternSampleSize int
}

// Scanner analyses the open pull requests of one repository
type Scanner struct {
	provider Provider
	owner    string
	repo     string
	opts     Options
}

// New creates a Scanner for owner/repo backed by provider
func New(provider Provider, owner, repo string, opts Options) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.OpenPRLimit <= 0 {
		opts.OpenPRLimit = DefaultOpenPRLimit
	}
	if opts.PatternSampleSize <= 0 {
		opts.PatternSampleSize = DefaultPatternSampleSize
	}
	return &Scanner{provider: provider, owner: owner, repo: repo, opts: opts}
}

// RecommendPR fetches a single PR and recommends a strategy for it
func (s *Scanner) RecommendPR(ctx context.Context, number int) (*models.PRAnalysis, error) {
	facts, err := s.provider.FetchPullRequest(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze PR #%d: %w", number, err)
	}
	if facts == nil {
		return nil, fmt.Errorf("failed to analyze PR #%d: %w", number, models.ErrPRNotFound)
	}
	return &models.PRAnalysis{Facts: *facts, Recommendation: strategy.Recommend(*facts)}, nil
}

// AnalyzeRepository recommends a strategy for every open PR, finds the
// latest merged PR and aggregates merge patterns.
//
// A PR whose facts cannot be fetched is logged, recorded in Failures and
// left out of ActivePRs; the scan carries on. Only a failing open-PR
// listing or a cancelled context aborts.
func (s *Scanner) AnalyzeRepository(ctx context.Context) (*models.RepositoryAnalysis, error) {
	open, err := s.provider.ListPullRequests(ctx, models.ListOptions{
		State:   models.PRStateOpen,
		Page:    1,
		PerPage: s.opts.OpenPRLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open PRs: %w", err)
	}

	logging.Logger.Debug("Analyzing open PRs", "repo", s.owner+"/"+s.repo, "count", len(open))

	active, failures := s.analyzeAll(ctx, open)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := &models.RepositoryAnalysis{
		Owner:     s.owner,
		Repo:      s.repo,
		ActivePRs: active,
		Failures:  failures,
	}

	closed, err := s.listClosed(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to list closed PRs, using fallback patterns", "error", err)
		analysis.Patterns = strategy.FallbackPatterns()
		return analysis, nil
	}

	samples := s.collectSamples(ctx, closed)
	analysis.Patterns = strategy.AnalyzePatterns(samples)
	analysis.LatestMerged = latestMerged(samples)

	return analysis, nil
}

// MergePatterns aggregates merge patterns from recently closed PRs.
// It never fails; a failing listing yields the fallback patterns.
func (s *Scanner) MergePatterns(ctx context.Context) models.RepositoryMergePatterns {
	closed, err := s.listClosed(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to list closed PRs, using fallback patterns", "error", err)
		return strategy.FallbackPatterns()
	}
	return strategy.AnalyzePatterns(s.collectSamples(ctx, closed))
}

func (s *Scanner) listClosed(ctx context.Context) ([]models.PullRequestFacts, error) {
	return s.provider.ListPullRequests(ctx, models.ListOptions{
		State:   models.PRStateClosed,
		Page:    1,
		PerPage: s.opts.PatternSampleSize,
	})
}

// analyzeAll fetches and recommends every listed PR concurrently.
// Results land in index-addressed slots so output order matches input order.
func (s *Scanner) analyzeAll(ctx context.Context, listed []models.PullRequestFacts) ([]models.PRAnalysis, []models.ScanFailure) {
	slots := make([]*models.PRAnalysis, len(listed))
	errs := make([]error, len(listed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, pr := range listed {
		g.Go(func() error {
			analysis, err := s.RecommendPR(gctx, pr.ID)
			if err != nil {
				logging.Logger.Warn("Error analyzing PR", "pr", pr.ID, "error", err)
				errs[i] = err
				return nil
			}
			slots[i] = analysis
			return nil
		})
	}
	_ = g.Wait()

	active := make([]models.PRAnalysis, 0, len(listed))
	var failures []models.ScanFailure
	for i, slot := range slots {
		if slot == nil {
			failures = append(failures, models.ScanFailure{Number: listed[i].ID, Error: errs[i].Error()})
			continue
		}
		active = append(active, *slot)
	}
	return active, failures
}

// collectSamples turns a closed PR listing into pattern samples.
//
// Merged PRs are re-fetched for their size fields, which listings omit,
// and the first TallySampleSize merged PRs get their merge commit message
// looked up. Both lookups are best effort: a failed or empty fetch keeps the
// listing facts, a failed or empty commit lookup leaves the message nil.
func (s *Scanner) collectSamples(ctx context.Context, closed []models.PullRequestFacts) []models.MergedPRSample {
	samples := make([]models.MergedPRSample, len(closed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	mergedSeen := 0
	for i, pr := range closed {
		samples[i] = models.NewMergedPRSample(pr)
		if !pr.IsMerged() {
			continue
		}
		lookupCommit := mergedSeen < strategy.TallySampleSize
		mergedSeen++

		g.Go(func() error {
			facts := pr
			if full, err := s.provider.FetchPullRequest(gctx, pr.ID); err != nil || full == nil {
				logging.Logger.Debug("Keeping listing facts for merged PR", "pr", pr.ID, "error", err)
			} else {
				facts = *full
				if facts.MergedAt == nil {
					facts.MergedAt = pr.MergedAt
				}
				if facts.MergeCommitSHA == "" {
					facts.MergeCommitSHA = pr.MergeCommitSHA
				}
			}
			sample := models.NewMergedPRSample(facts)

			if lookupCommit && facts.MergeCommitSHA != "" {
				commit, err := s.provider.GetCommit(gctx, facts.MergeCommitSHA)
				if err != nil || commit == nil {
					logging.Logger.Debug("Skipping merge commit lookup", "pr", pr.ID, "sha", facts.MergeCommitSHA, "error", err)
				} else {
					sample = sample.WithMessage(commit.Message)
				}
			}

			samples[i] = sample
			return nil
		})
	}
	_ = g.Wait()

	return samples
}

// latestMerged returns the most recently updated merged PR in samples
func latestMerged(samples []models.MergedPRSample) *models.PullRequestFacts {
	for _, s := range samples {
		if s.Facts.IsMerged() {
			facts := s.Facts
			return &facts
		}
	}
	return nil
}
