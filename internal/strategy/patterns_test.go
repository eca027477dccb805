package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

func mergedSample(id, additions, deletions int, message *string) models.MergedPRSample {
	mergedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.MergedPRSample{
		Facts: models.PullRequestFacts{
			ID:        id,
			State:     models.PRStateClosed,
			Additions: additions,
			Deletions: deletions,
			MergedAt:  &mergedAt,
		},
		MergeCommitMessage: message,
	}
}

func closedSample(id, additions int) models.MergedPRSample {
	return models.NewMergedPRSample(models.PullRequestFacts{
		ID:        id,
		State:     models.PRStateClosed,
		Additions: additions,
	})
}

func msg(s string) *string {
	return &s
}

func TestAnalyzePatternsEmpty(t *testing.T) {
	for _, samples := range [][]models.MergedPRSample{nil, {closedSample(1, 500)}} {
		patterns := AnalyzePatterns(samples)

		assert.Equal(t, models.RepositoryMergePatterns{
			PreferredStrategy: models.StrategyMerge,
			AveragePRSize:     0,
			ConflictFrequency: 0,
		}, patterns)
	}
}

func TestAnalyzePatternsAverageSize(t *testing.T) {
	samples := []models.MergedPRSample{
		mergedSample(1, 100, 0, nil),
		closedSample(2, 10000),
		mergedSample(3, 100, 1, nil),
		mergedSample(4, 0, 0, nil),
	}

	patterns := AnalyzePatterns(samples)

	// (100 + 101 + 0) / 3 = 67
	assert.Equal(t, 67, patterns.AveragePRSize)
	assert.Equal(t, ConflictFrequencyEstimate, patterns.ConflictFrequency)
}

func TestAnalyzePatternsPreferredStrategy(t *testing.T) {
	mergeMsg := msg("Merge pull request #12 from org/feature")
	squashMsg := msg("feat: add dashboard (#12)")

	tests := []struct {
		name     string
		messages []*string
		expected models.Strategy
	}{
		{"majority merge", []*string{mergeMsg, mergeMsg, squashMsg}, models.StrategyMerge},
		{"majority squash", []*string{squashMsg, squashMsg, mergeMsg}, models.StrategySquash},
		{"tie favours merge", []*string{squashMsg, mergeMsg}, models.StrategyMerge},
		{"failed lookups are skipped", []*string{nil, nil, squashMsg}, models.StrategySquash},
		{"all lookups failed", []*string{nil, nil}, models.StrategyMerge},
		{"empty message counts as squash", []*string{msg("")}, models.StrategySquash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []models.MergedPRSample
			for i, m := range tt.messages {
				samples = append(samples, mergedSample(i+1, 10, 10, m))
			}

			assert.Equal(t, tt.expected, AnalyzePatterns(samples).PreferredStrategy)
		})
	}
}

func TestAnalyzePatternsTallyUsesTenMostRecent(t *testing.T) {
	var samples []models.MergedPRSample
	for i := 0; i < 10; i++ {
		samples = append(samples, mergedSample(i, 1, 1, msg("Merge pull request #1")))
	}
	// Older squash merges outnumber them but fall outside the tally window
	for i := 10; i < 25; i++ {
		samples = append(samples, mergedSample(i, 1, 1, msg("chore: squash")))
	}

	patterns := AnalyzePatterns(samples)

	assert.Equal(t, models.StrategyMerge, patterns.PreferredStrategy)
	assert.Equal(t, 2, patterns.AveragePRSize)
}

func TestAnalyzePatternsTallyWindowSkipsClosedUnmerged(t *testing.T) {
	samples := []models.MergedPRSample{closedSample(100, 1)}
	for i := 0; i < 10; i++ {
		samples = append(samples, mergedSample(i, 1, 1, msg("fix: something")))
	}
	samples = append(samples, mergedSample(11, 1, 1, msg("Merge pull request #11")))

	// The window counts merged PRs, so the unmerged entry does not push #11 in
	assert.Equal(t, models.StrategySquash, AnalyzePatterns(samples).PreferredStrategy)
}

func TestFallbackPatterns(t *testing.T) {
	patterns := FallbackPatterns()

	assert.Equal(t, models.StrategyMerge, patterns.PreferredStrategy)
	assert.Equal(t, 200, patterns.AveragePRSize)
	assert.Equal(t, 0.1, patterns.ConflictFrequency)
}
