package models

// PRAnalysis pairs the facts of an open PR with its recommendation
type PRAnalysis struct {
	Facts          PullRequestFacts `json:"pr"`
	Recommendation Recommendation   `json:"recommendation"`
}

// Status derives the dashboard status of this PR
func (a PRAnalysis) Status() PRStatus {
	return StatusOf(a.Facts, a.Recommendation)
}

// NeedsAttention is true for PRs listed under priority actions: manual
// strategy, or mergeability false or unknown
func (a PRAnalysis) NeedsAttention() bool {
	return a.Recommendation.Strategy == StrategyManual || !a.Facts.IsMergeable()
}

// ScanFailure records a PR that could not be analysed
type ScanFailure struct {
	Number int    `json:"number"`
	Error  string `json:"error"`
}

// RepositoryAnalysis is the result of a full repository scan
type RepositoryAnalysis struct {
	// Owner and Repo identify the scanned repository
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	// LatestMerged is the most recently merged PR, if one could be fetched
	LatestMerged *PullRequestFacts `json:"latest_merged_pr,omitempty"`
	// ActivePRs keeps the order in which the provider listed them
	ActivePRs []PRAnalysis `json:"active_prs"`
	// Patterns aggregated from recently merged PRs
	Patterns RepositoryMergePatterns `json:"merge_patterns"`
	// Failures lists PRs omitted from ActivePRs
	Failures []ScanFailure `json:"failures,omitempty"`
}

// Ready returns the active PRs that can be merged right away
func (r RepositoryAnalysis) Ready() []PRAnalysis {
	var ready []PRAnalysis
	for _, pr := range r.ActivePRs {
		if pr.Facts.IsReady() {
			ready = append(ready, pr)
		}
	}
	return ready
}

// Conflicted returns the active PRs that need attention before merging
func (r RepositoryAnalysis) Conflicted() []PRAnalysis {
	var conflicted []PRAnalysis
	for _, pr := range r.ActivePRs {
		if pr.NeedsAttention() {
			conflicted = append(conflicted, pr)
		}
	}
	return conflicted
}
