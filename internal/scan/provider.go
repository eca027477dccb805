// Package scan runs merge strategy analysis against a pull request provider.
package scan

import (
	"context"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// Provider supplies pull request facts from a code hosting service
type Provider interface {
	// FetchPullRequest returns the full facts of one PR
	FetchPullRequest(ctx context.Context, number int) (*models.PullRequestFacts, error)
	// ListPullRequests returns one page of PRs, most recently updated first.
	// Listings may omit size fields.
	ListPullRequests(ctx context.Context, opts models.ListOptions) ([]models.PullRequestFacts, error)
	// GetCommit returns a commit by SHA
	GetCommit(ctx context.Context, sha string) (*models.CommitInfo, error)
}

// Merger is implemented by providers that can merge pull requests
type Merger interface {
	MergePullRequest(ctx context.Context, number int, method string) (*models.MergeResult, error)
}
