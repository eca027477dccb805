package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// FetchPullRequest gets the full facts of one PR
func (c *Client) FetchPullRequest(ctx context.Context, number int) (*models.PullRequestFacts, error) {
	var pr githubPullRequest
	if err := c.doRequest(ctx, http.MethodGet, c.repoPath("/pulls/%d", number), nil, &pr); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("PR #%d in %s: %w", number, c.Repository(), models.ErrPRNotFound)
		}
		return nil, fmt.Errorf("failed to get PR #%d: %w", number, err)
	}

	facts := pr.toFacts()
	return &facts, nil
}

// ListPullRequests lists one page of PRs, most recently updated first.
// GitHub's listing leaves additions, deletions, files and commits at zero.
func (c *Client) ListPullRequests(ctx context.Context, opts models.ListOptions) ([]models.PullRequestFacts, error) {
	query := url.Values{}
	query.Set("state", string(opts.State))
	query.Set("sort", "updated")
	query.Set("direction", "desc")
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	var prs []githubPullRequest
	if err := c.doRequest(ctx, http.MethodGet, c.repoPath("/pulls?%s", query.Encode()), nil, &prs); err != nil {
		return nil, fmt.Errorf("failed to list %s PRs: %w", opts.State, err)
	}

	facts := make([]models.PullRequestFacts, 0, len(prs))
	for _, pr := range prs {
		facts = append(facts, pr.toFacts())
	}
	return facts, nil
}

// GetCommit gets a git commit object by SHA
func (c *Client) GetCommit(ctx context.Context, sha string) (*models.CommitInfo, error) {
	var commit githubCommit
	if err := c.doRequest(ctx, http.MethodGet, c.repoPath("/git/commits/%s", sha), nil, &commit); err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}
	return &models.CommitInfo{SHA: commit.SHA, Message: commit.Message}, nil
}

// MergePullRequest merges a PR with the given merge_method (merge, squash or rebase)
func (c *Client) MergePullRequest(ctx context.Context, number int, method string) (*models.MergeResult, error) {
	var resp githubMergeResponse
	body := map[string]string{"merge_method": method}
	if err := c.doRequest(ctx, http.MethodPut, c.repoPath("/pulls/%d/merge", number), body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusMethodNotAllowed || apiErr.StatusCode == http.StatusConflict) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotMergeable, apiErr.Body)
		}
		return nil, err
	}

	return &models.MergeResult{
		PrNumber: number,
		Success:  resp.Merged,
		SHA:      resp.SHA,
		Message:  resp.Message,
	}, nil
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// GitHub API response types
type githubPullRequest struct {
	Number         int        `json:"number"`
	Title          string     `json:"title"`
	State          string     `json:"state"`
	HTMLURL        string     `json:"html_url"`
	MergeableState string     `json:"mergeable_state"`
	Mergeable      *bool      `json:"mergeable"`
	Additions      int        `json:"additions"`
	Deletions      int        `json:"deletions"`
	ChangedFiles   int        `json:"changed_files"`
	Commits        int        `json:"commits"`
	Draft          bool       `json:"draft"`
	MergedAt       *time.Time `json:"merged_at"`
	MergeCommitSHA string     `json:"merge_commit_sha"`
	Base           githubRef  `json:"base"`
	Head           githubRef  `json:"head"`
}

type githubRef struct {
	Ref string `json:"ref"`
}

type githubCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

type githubMergeResponse struct {
	SHA     string `json:"sha"`
	Merged  bool   `json:"merged"`
	Message string `json:"message"`
}

// toFacts converts a GitHub PR to the normalized facts record
func (pr githubPullRequest) toFacts() models.PullRequestFacts {
	state := models.PRState(pr.State)
	if pr.MergedAt != nil {
		state = models.PRStateMerged
	}

	mergeableState := pr.MergeableState
	if mergeableState == "" {
		mergeableState = models.MergeableStateUnknown
	}

	return models.PullRequestFacts{
		ID:             pr.Number,
		Title:          pr.Title,
		State:          state,
		MergeableState: mergeableState,
		Mergeable:      pr.Mergeable,
		Additions:      pr.Additions,
		Deletions:      pr.Deletions,
		ChangedFiles:   pr.ChangedFiles,
		Commits:        pr.Commits,
		Draft:          pr.Draft,
		BaseRef:        pr.Base.Ref,
		HeadRef:        pr.Head.Ref,
		URL:            pr.HTMLURL,
		MergedAt:       pr.MergedAt,
		MergeCommitSHA: pr.MergeCommitSHA,
	}
}
