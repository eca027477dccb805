package models

// RepositoryMergePatterns summarizes how recent PRs were merged
type RepositoryMergePatterns struct {
	// PreferredStrategy is "merge" or "squash"
	PreferredStrategy Strategy `json:"preferred_strategy"`
	// AveragePRSize is the rounded mean of additions+deletions
	AveragePRSize int `json:"average_pr_size"`
	// ConflictFrequency is an estimate, not derived from data
	ConflictFrequency float64 `json:"conflict_frequency"`
}

// MergedPRSample is one closed PR used for pattern aggregation
type MergedPRSample struct {
	// Facts of the closed PR (MergedAt nil means it was closed without merging)
	Facts PullRequestFacts
	// MergeCommitMessage is nil when the commit lookup failed or was skipped
	MergeCommitMessage *string
}

// NewMergedPRSample creates a sample without a commit message
func NewMergedPRSample(facts PullRequestFacts) MergedPRSample {
	return MergedPRSample{Facts: facts}
}

// WithMessage sets the merge commit message and returns the sample
func (s MergedPRSample) WithMessage(message string) MergedPRSample {
	s.MergeCommitMessage = &message
	return s
}
