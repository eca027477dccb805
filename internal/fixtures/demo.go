package fixtures

import (
	"time"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

func mergedAt(day int) *time.Time {
	t := time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC)
	return &t
}

// DemoPullRequests returns the demo repository's PRs, most recently updated first
func DemoPullRequests() []models.PullRequestFacts {
	return []models.PullRequestFacts{
		{
			ID:             32,
			Title:          "Dev",
			State:          models.PRStateOpen,
			MergeableState: models.MergeableStateDirty,
			Mergeable:      models.BoolPtr(false),
			Additions:      1300,
			Deletions:      831,
			ChangedFiles:   16,
			Commits:        8,
			Draft:          true,
			BaseRef:        "main",
			HeadRef:        "dev",
		},
		{
			ID:             30,
			Title:          "[Security] Replace Insufficient HTML Tag Removal Regex with Robust XSS Sanitization",
			State:          models.PRStateOpen,
			MergeableState: models.MergeableStateClean,
			Mergeable:      models.BoolPtr(true),
			Additions:      200,
			Deletions:      50,
			ChangedFiles:   5,
			Commits:        3,
			Draft:          true,
			BaseRef:        "dev",
			HeadRef:        "copilot/fix-29",
		},
		{
			ID:             28,
			Title:          "Security and Code Quality Improvements",
			State:          models.PRStateClosed,
			MergeableState: models.MergeableStateClean,
			Mergeable:      models.BoolPtr(true),
			Additions:      192,
			Deletions:      103,
			ChangedFiles:   10,
			Commits:        7,
			BaseRef:        "dev",
			HeadRef:        "copilot/fix-418a7b03",
			MergedAt:       mergedAt(20),
			MergeCommitSHA: "5f1e2d3c4b5a69788796a5b4c3d2e1f0a9b8c7d6",
		},
		{
			ID:             27,
			Title:          "Bump next from 14.2.28 to 14.2.30 in the npm_and_yarn group across 1 directory",
			State:          models.PRStateOpen,
			MergeableState: models.MergeableStateClean,
			Mergeable:      models.BoolPtr(true),
			Additions:      5,
			Deletions:      5,
			ChangedFiles:   1,
			Commits:        1,
			BaseRef:        "main",
			HeadRef:        "dependabot/npm_and_yarn/npm_and_yarn-3bd7c2c787",
		},
		{
			ID:             26,
			Title:          "Add keyboard shortcuts",
			State:          models.PRStateClosed,
			MergeableState: models.MergeableStateClean,
			Mergeable:      models.BoolPtr(true),
			Additions:      88,
			Deletions:      12,
			ChangedFiles:   4,
			Commits:        2,
			BaseRef:        "dev",
			HeadRef:        "feature/shortcuts",
			MergedAt:       mergedAt(12),
			MergeCommitSHA: "0a1b2c3d4e5f60718293a4b5c6d7e8f901234567",
		},
		{
			ID:             25,
			Title:          "Experimental player rewrite",
			State:          models.PRStateClosed,
			MergeableState: models.MergeableStateDirty,
			Mergeable:      models.BoolPtr(false),
			Additions:      2400,
			Deletions:      1900,
			ChangedFiles:   41,
			Commits:        23,
			BaseRef:        "dev",
			HeadRef:        "feature/player",
		},
	}
}

// DemoCommits returns merge commit messages for the demo's merged PRs
func DemoCommits() map[string]string {
	return map[string]string{
		"5f1e2d3c4b5a69788796a5b4c3d2e1f0a9b8c7d6": "Merge pull request #28 from mrwebwork/copilot/fix-418a7b03\n\nSecurity and Code Quality Improvements",
		"0a1b2c3d4e5f60718293a4b5c6d7e8f901234567": "Merge pull request #26 from mrwebwork/feature/shortcuts\n\nAdd keyboard shortcuts",
	}
}
