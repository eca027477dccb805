package models

import "time"

// PRState is the GitHub state of a pull request
type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateMerged PRState = "merged"
)

// Mergeable states reported by GitHub that the engine and report care about
const (
	MergeableStateDirty   = "dirty"
	MergeableStateClean   = "clean"
	MergeableStateUnknown = "unknown"
)

// PullRequestFacts is the normalized record of a pull request that every
// recommendation is derived from
type PullRequestFacts struct {
	// ID is the PR number (e.g., 32 for "#32")
	ID int `json:"id"`
	// Title is the PR title
	Title string `json:"title"`
	// State is open, closed or merged
	State PRState `json:"state"`
	// MergeableState as reported by GitHub ("clean", "dirty", "blocked", ...)
	MergeableState string `json:"mergeable_state"`
	// Mergeable is nil while GitHub has not computed mergeability yet
	Mergeable *bool `json:"mergeable"`
	// Additions is the number of added lines
	Additions int `json:"additions"`
	// Deletions is the number of removed lines
	Deletions int `json:"deletions"`
	// ChangedFiles is the number of files touched
	ChangedFiles int `json:"changed_files"`
	// Commits is the number of commits in the PR
	Commits int `json:"commits"`
	// Draft is true while the PR is not ready for review
	Draft bool `json:"draft"`
	// BaseRef is the target branch
	BaseRef string `json:"base_ref"`
	// HeadRef is the source branch
	HeadRef string `json:"head_ref"`
	// URL is the PR web URL
	URL string `json:"url,omitempty"`
	// MergedAt is set once the PR has been merged
	MergedAt *time.Time `json:"merged_at,omitempty"`
	// MergeCommitSHA is the commit GitHub created (or would create) for the merge
	MergeCommitSHA string `json:"merge_commit_sha,omitempty"`
}

// Normalized returns a copy with sparse or invalid counts replaced by
// their safe defaults: negative counts become 0, commits at least 1
func (f PullRequestFacts) Normalized() PullRequestFacts {
	f.Additions = max(f.Additions, 0)
	f.Deletions = max(f.Deletions, 0)
	f.ChangedFiles = max(f.ChangedFiles, 0)
	f.Commits = max(f.Commits, 1)
	if f.MergeableState == "" {
		f.MergeableState = MergeableStateUnknown
	}
	return f
}

// TotalChanges returns additions + deletions
func (f PullRequestFacts) TotalChanges() int {
	return f.Additions + f.Deletions
}

// MergeableKnown reports whether GitHub has computed mergeability
func (f PullRequestFacts) MergeableKnown() bool {
	return f.Mergeable != nil
}

// IsMergeable is true only when GitHub explicitly reported the PR as mergeable
func (f PullRequestFacts) IsMergeable() bool {
	return f.Mergeable != nil && *f.Mergeable
}

// HasConflicts is true when GitHub reported the PR as not mergeable or dirty.
// Unknown mergeability alone is not a conflict.
func (f PullRequestFacts) HasConflicts() bool {
	if f.Mergeable != nil && !*f.Mergeable {
		return true
	}
	return f.MergeableState == MergeableStateDirty
}

// IsReady is true for mergeable, non-draft PRs with a clean mergeable state
func (f PullRequestFacts) IsReady() bool {
	return f.IsMergeable() && !f.Draft && f.MergeableState == MergeableStateClean
}

// IsMerged reports whether the PR carries a merge timestamp
func (f PullRequestFacts) IsMerged() bool {
	return f.MergedAt != nil
}

// BoolPtr returns a pointer to b, for building tri-state Mergeable values
func BoolPtr(b bool) *bool {
	return &b
}
