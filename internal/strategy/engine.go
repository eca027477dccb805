// Package strategy recommends merge strategies for pull requests and
// aggregates merge patterns from a repository's history.
package strategy

import "github.com/wahlandcase/attuned.mergestrategy/internal/models"

// Thresholds used by the size, ratio and file-count rules
const (
	LargePRThreshold   = 1000
	SmallPRThreshold   = 100
	TimelineThreshold  = 500
	SmallPRMaxCommits  = 3
	SquashCommitsAbove = 10
	ManyFilesThreshold = 20
	DeletionRatioLimit = 0.7
)

// Base confidence per rule outcome
const (
	ConflictConfidence = 90
	LargeSquashConf    = 85
	LargeMergeConf     = 75
	SmallSquashConf    = 90
	MediumMergeConf    = 80
	DraftPenalty       = 20
)

// Reasoning, risk and prerequisite texts, in the order rules append them
const (
	ReasonConflicts       = "PR has merge conflicts that require manual resolution"
	ReasonLarge           = "Large PR with significant changes"
	ReasonLargeSquash     = "Multiple commits benefit from squashing for clean history"
	ReasonLargeMerge      = "Preserve individual commit context for large changes"
	ReasonSmall           = "Small PR with few commits - ideal for squashing"
	ReasonMedium          = "Medium-sized PR - standard merge preserves history"
	ReasonDeletionRatio   = "Consider thorough testing due to significant code removal"
	ReasonManyFiles       = "Consider breaking into smaller PRs if possible"
	RiskConflicts         = "Manual conflict resolution may introduce errors"
	RiskLarge             = "Large changes increase integration risk"
	RiskDeletionRatio     = "High deletion ratio suggests major refactoring"
	RiskDraft             = "PR is still in draft state"
	RiskManyFiles         = "Many files changed - increased integration complexity"
	PrereqResolveConflict = "Resolve merge conflicts first"
	PrereqReadyForReview  = "Mark PR as ready for review"
	TimelineConflicts     = "1-2 hours for conflict resolution"
)

// Recommend classifies a pull request and returns its merge strategy
// recommendation. It never fails: sparse facts are normalized first.
//
// Rules run in order. A conflict ends evaluation immediately; every other
// rule only appends to the reasoning and risks or adjusts confidence.
// Confidence is not clamped, so the draft penalty can take it below the
// base of any size class.
func Recommend(facts models.PullRequestFacts) models.Recommendation {
	f := facts.Normalized()

	rec := models.Recommendation{
		Reasoning:     []string{},
		Risks:         []string{},
		Prerequisites: []string{},
	}

	if f.HasConflicts() {
		rec.Strategy = models.StrategyManual
		rec.Confidence = ConflictConfidence
		rec.Reasoning = append(rec.Reasoning, ReasonConflicts)
		rec.Prerequisites = append(rec.Prerequisites, PrereqResolveConflict)
		rec.Risks = append(rec.Risks, RiskConflicts)
		rec.TimelineEstimate = TimelineConflicts
		return rec
	}

	totalChanges := f.TotalChanges()

	switch {
	case totalChanges > LargePRThreshold:
		rec.Reasoning = append(rec.Reasoning, ReasonLarge)
		if f.Commits > SquashCommitsAbove {
			rec.Strategy = models.StrategySquash
			rec.Confidence = LargeSquashConf
			rec.Reasoning = append(rec.Reasoning, ReasonLargeSquash)
		} else {
			rec.Strategy = models.StrategyMerge
			rec.Confidence = LargeMergeConf
			rec.Reasoning = append(rec.Reasoning, ReasonLargeMerge)
		}
		rec.Risks = append(rec.Risks, RiskLarge)
	case totalChanges < SmallPRThreshold && f.Commits <= SmallPRMaxCommits:
		rec.Strategy = models.StrategySquash
		rec.Confidence = SmallSquashConf
		rec.Reasoning = append(rec.Reasoning, ReasonSmall)
	default:
		rec.Strategy = models.StrategyMerge
		rec.Confidence = MediumMergeConf
		rec.Reasoning = append(rec.Reasoning, ReasonMedium)
	}

	if DeletionRatio(f) > DeletionRatioLimit {
		rec.Risks = append(rec.Risks, RiskDeletionRatio)
		rec.Reasoning = append(rec.Reasoning, ReasonDeletionRatio)
	}

	if f.Draft {
		rec.Confidence -= DraftPenalty
		rec.Risks = append(rec.Risks, RiskDraft)
		rec.Prerequisites = append(rec.Prerequisites, PrereqReadyForReview)
	}

	if f.ChangedFiles > ManyFilesThreshold {
		rec.Risks = append(rec.Risks, RiskManyFiles)
		rec.Reasoning = append(rec.Reasoning, ReasonManyFiles)
	}

	rec.TimelineEstimate = EstimateTimeline(rec.Strategy, totalChanges)
	return rec
}

// DeletionRatio returns deletions / max(additions, 1)
func DeletionRatio(facts models.PullRequestFacts) float64 {
	return float64(facts.Deletions) / float64(max(facts.Additions, 1))
}

// EstimateTimeline returns how long merging is expected to take.
// Recommend never picks rebase (or manual, which short-circuits with its own
// estimate), but both keep a row here.
func EstimateTimeline(strategy models.Strategy, totalChanges int) string {
	large := totalChanges > TimelineThreshold

	switch strategy {
	case models.StrategySquash:
		if large {
			return "15-30 minutes"
		}
		return "5-10 minutes"
	case models.StrategyRebase:
		if large {
			return "30-60 minutes"
		}
		return "10-20 minutes"
	case models.StrategyManual:
		return "1-4 hours depending on conflict complexity"
	default:
		if large {
			return "10-20 minutes"
		}
		return "5-10 minutes"
	}
}
