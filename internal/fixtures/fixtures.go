// Package fixtures serves sample pull requests through the scan.Provider
// interface, for the demo command and tests.
package fixtures

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

const (
	DemoOwner = "mrwebwork"
	DemoRepo  = "spotify"
)

// Provider is an in-memory pull request provider
type Provider struct {
	mu      sync.Mutex
	prs     []models.PullRequestFacts
	commits map[string]string
	merged  []models.MergeResult

	// FetchErrors and CommitErrors inject failures per PR number / SHA
	FetchErrors  map[int]error
	CommitErrors map[string]error
	// ListErrors injects a failure per listed state
	ListErrors map[models.PRState]error
}

// NewProvider creates a provider over prs (most recently updated first)
// and merge commit messages keyed by SHA
func NewProvider(prs []models.PullRequestFacts, commits map[string]string) *Provider {
	if commits == nil {
		commits = map[string]string{}
	}
	return &Provider{
		prs:          prs,
		commits:      commits,
		FetchErrors:  map[int]error{},
		CommitErrors: map[string]error{},
		ListErrors:   map[models.PRState]error{},
	}
}

// Demo returns a provider serving the demo repository
func Demo() *Provider {
	return NewProvider(DemoPullRequests(), DemoCommits())
}

// FetchPullRequest implements scan.Provider
func (p *Provider) FetchPullRequest(ctx context.Context, number int) (*models.PullRequestFacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.FetchErrors[number]; err != nil {
		return nil, err
	}
	for _, pr := range p.prs {
		if pr.ID == number {
			facts := pr
			return &facts, nil
		}
	}
	return nil, fmt.Errorf("PR #%d: %w", number, models.ErrPRNotFound)
}

// ListPullRequests implements scan.Provider. Closed listings include merged PRs.
func (p *Provider) ListPullRequests(ctx context.Context, opts models.ListOptions) ([]models.PullRequestFacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ListErrors[opts.State]; err != nil {
		return nil, err
	}

	var matching []models.PullRequestFacts
	for _, pr := range p.prs {
		if pr.State == opts.State || (opts.State == models.PRStateClosed && pr.State == models.PRStateMerged) {
			matching = append(matching, pr)
		}
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 30
	}
	page := max(opts.Page, 1)
	start := (page - 1) * perPage
	if start >= len(matching) {
		return []models.PullRequestFacts{}, nil
	}
	end := min(start+perPage, len(matching))
	return matching[start:end], nil
}

// GetCommit implements scan.Provider
func (p *Provider) GetCommit(ctx context.Context, sha string) (*models.CommitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.CommitErrors[sha]; err != nil {
		return nil, err
	}
	message, ok := p.commits[sha]
	if !ok {
		return nil, fmt.Errorf("commit %s not found", sha)
	}
	return &models.CommitInfo{SHA: sha, Message: message}, nil
}

// MergePullRequest implements scan.Merger. The PR is marked merged in memory.
func (p *Provider) MergePullRequest(ctx context.Context, number int, method string) (*models.MergeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, pr := range p.prs {
		if pr.ID != number {
			continue
		}
		now := time.Now().UTC()
		sha := fmt.Sprintf("%07x", number*7919)
		p.prs[i].State = models.PRStateClosed
		p.prs[i].MergedAt = &now
		p.prs[i].MergeCommitSHA = sha

		result := models.MergeResult{
			PrNumber: number,
			Success:  true,
			SHA:      sha,
			Message:  fmt.Sprintf("Pull Request successfully merged (%s)", method),
		}
		p.merged = append(p.merged, result)
		return &result, nil
	}
	return nil, fmt.Errorf("PR #%d: %w", number, models.ErrPRNotFound)
}

// Merged returns the merges executed so far
func (p *Provider) Merged() []models.MergeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.MergeResult(nil), p.merged...)
}
