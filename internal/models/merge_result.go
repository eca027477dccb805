package models

// MergeResult represents the result of executing a recommended merge
type MergeResult struct {
	// PrNumber is the PR number
	PrNumber int `json:"pr_number"`
	// PrTitle is the PR title
	PrTitle string `json:"pr_title"`
	// Strategy used for the merge
	Strategy Strategy `json:"strategy"`
	// Success indicates whether merge succeeded
	Success bool `json:"success"`
	// SHA of the merge commit (empty on dry run or failure)
	SHA string `json:"sha,omitempty"`
	// Message returned by GitHub or the reason the merge was not attempted
	Message string `json:"message,omitempty"`
	// DryRun is true when no request was sent
	DryRun bool `json:"dry_run"`
}
