package strategy

import (
	"math"
	"strings"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

const (
	// MergeCommitMarker identifies GitHub's default merge commit message
	MergeCommitMarker = "Merge pull request"
	// TallySampleSize is how many recent merged PRs vote on the preferred strategy
	TallySampleSize = 10
	// ConflictFrequencyEstimate is a placeholder until conflicts are tracked
	ConflictFrequencyEstimate = 0.1
	// FallbackAveragePRSize is reported when the history cannot be read at all
	FallbackAveragePRSize = 200
)

// AnalyzePatterns aggregates merge patterns from closed PRs, most recent first.
//
// Only samples with a merge timestamp count. Every merged sample contributes
// to the average size; only the first TallySampleSize with a known commit
// message vote on merge versus squash. Ties favour merge.
func AnalyzePatterns(samples []models.MergedPRSample) models.RepositoryMergePatterns {
	merged := make([]models.MergedPRSample, 0, len(samples))
	for _, s := range samples {
		if s.Facts.IsMerged() {
			merged = append(merged, s)
		}
	}

	if len(merged) == 0 {
		return models.RepositoryMergePatterns{
			PreferredStrategy: models.StrategyMerge,
			AveragePRSize:     0,
			ConflictFrequency: 0,
		}
	}

	total := 0
	for _, s := range merged {
		total += s.Facts.Normalized().TotalChanges()
	}
	average := int(math.Round(float64(total) / float64(len(merged))))

	mergeCommits, squashCommits := 0, 0
	for _, s := range merged[:min(len(merged), TallySampleSize)] {
		// Failed lookups are skipped for the tally only
		if s.MergeCommitMessage == nil {
			continue
		}
		if strings.Contains(*s.MergeCommitMessage, MergeCommitMarker) {
			mergeCommits++
		} else {
			squashCommits++
		}
	}

	preferred := models.StrategyMerge
	if squashCommits > mergeCommits {
		preferred = models.StrategySquash
	}

	return models.RepositoryMergePatterns{
		PreferredStrategy: preferred,
		AveragePRSize:     average,
		ConflictFrequency: ConflictFrequencyEstimate,
	}
}

// FallbackPatterns is reported when the closed PR listing itself failed
func FallbackPatterns() models.RepositoryMergePatterns {
	return models.RepositoryMergePatterns{
		PreferredStrategy: models.StrategyMerge,
		AveragePRSize:     FallbackAveragePRSize,
		ConflictFrequency: ConflictFrequencyEstimate,
	}
}
