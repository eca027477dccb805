package github

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

func init() {
	logging.Discard()
}

// mockHTTPClient is a test double for HTTPClient
type mockHTTPClient struct {
	mu       sync.Mutex
	requests []*http.Request
	doFunc   func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.doFunc(req)
}

func (m *mockHTTPClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newTestClient(mock *mockHTTPClient) *Client {
	return NewClient(Config{
		BaseURL:      "https://api.test",
		Token:        "test-token",
		Owner:        "mrwebwork",
		Repo:         "spotify",
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}, mock)
}

const prJSON = `{
	"number": 32,
	"title": "Dev",
	"state": "open",
	"html_url": "https://github.com/mrwebwork/spotify/pull/32",
	"mergeable_state": "dirty",
	"mergeable": false,
	"additions": 1300,
	"deletions": 831,
	"changed_files": 16,
	"commits": 8,
	"draft": true,
	"merged_at": null,
	"merge_commit_sha": "abc123",
	"base": {"ref": "main"},
	"head": {"ref": "dev"}
}`

func TestFetchPullRequest(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, prJSON), nil
		},
	}

	facts, err := newTestClient(mock).FetchPullRequest(context.Background(), 32)
	require.NoError(t, err)

	require.Len(t, mock.requests, 1)
	req := mock.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https://api.test/repos/mrwebwork/spotify/pulls/32", req.URL.String())
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.github+json", req.Header.Get("Accept"))

	assert.Equal(t, 32, facts.ID)
	assert.Equal(t, models.PRStateOpen, facts.State)
	assert.Equal(t, "dirty", facts.MergeableState)
	require.NotNil(t, facts.Mergeable)
	assert.False(t, *facts.Mergeable)
	assert.Equal(t, 1300, facts.Additions)
	assert.Equal(t, 831, facts.Deletions)
	assert.Equal(t, 16, facts.ChangedFiles)
	assert.Equal(t, 8, facts.Commits)
	assert.True(t, facts.Draft)
	assert.Equal(t, "main", facts.BaseRef)
	assert.Equal(t, "dev", facts.HeadRef)
	assert.Nil(t, facts.MergedAt)
}

func TestFetchPullRequestUnknownMergeability(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"number": 5, "state": "open", "mergeable": null}`), nil
		},
	}

	facts, err := newTestClient(mock).FetchPullRequest(context.Background(), 5)
	require.NoError(t, err)

	assert.Nil(t, facts.Mergeable)
	assert.Equal(t, models.MergeableStateUnknown, facts.MergeableState)
}

func TestFetchPullRequestNotFound(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusNotFound, `{"message": "Not Found"}`), nil
		},
	}

	_, err := newTestClient(mock).FetchPullRequest(context.Background(), 999)

	assert.ErrorIs(t, err, models.ErrPRNotFound)
	assert.Equal(t, 1, mock.calls(), "4xx must not be retried")
}

func TestRetriesServerErrors(t *testing.T) {
	attempts := 0
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			attempts++
			if attempts < 3 {
				return respond(http.StatusBadGateway, "bad gateway"), nil
			}
			return respond(http.StatusOK, prJSON), nil
		},
	}

	facts, err := newTestClient(mock).FetchPullRequest(context.Background(), 32)
	require.NoError(t, err)

	assert.Equal(t, 32, facts.ID)
	assert.Equal(t, 3, mock.calls())
}

func TestRetriesGiveUp(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		},
	}

	_, err := newTestClient(mock).FetchPullRequest(context.Background(), 32)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 3, mock.calls())
}

func TestCircuitBreakerOpens(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusServiceUnavailable, "down"), nil
		},
	}
	client := newTestClient(mock)

	// Two calls of three attempts each trip the breaker after five failures
	for i := 0; i < 2; i++ {
		_, _ = client.FetchPullRequest(context.Background(), 1)
	}
	before := mock.calls()

	_, err := client.FetchPullRequest(context.Background(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, before, mock.calls())
}

func TestListPullRequests(t *testing.T) {
	body := `[
		{"number": 28, "title": "Merged", "state": "closed", "merged_at": "2025-06-20T12:00:00Z", "merge_commit_sha": "sha28"},
		{"number": 25, "title": "Closed", "state": "closed", "merged_at": null}
	]`
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, body), nil
		},
	}

	prs, err := newTestClient(mock).ListPullRequests(context.Background(), models.ListOptions{
		State:   models.PRStateClosed,
		Page:    1,
		PerPage: 20,
	})
	require.NoError(t, err)

	query := mock.requests[0].URL.Query()
	assert.Equal(t, "/repos/mrwebwork/spotify/pulls", mock.requests[0].URL.Path)
	assert.Equal(t, "closed", query.Get("state"))
	assert.Equal(t, "updated", query.Get("sort"))
	assert.Equal(t, "desc", query.Get("direction"))
	assert.Equal(t, "20", query.Get("per_page"))
	assert.Equal(t, "1", query.Get("page"))

	require.Len(t, prs, 2)
	assert.Equal(t, models.PRStateMerged, prs[0].State)
	require.NotNil(t, prs[0].MergedAt)
	assert.Equal(t, time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC), prs[0].MergedAt.UTC())
	assert.Equal(t, "sha28", prs[0].MergeCommitSHA)
	assert.Equal(t, models.PRStateClosed, prs[1].State)
	assert.Nil(t, prs[1].MergedAt)
}

func TestGetCommit(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"sha": "sha28", "message": "Merge pull request #28 from x/y"}`), nil
		},
	}

	commit, err := newTestClient(mock).GetCommit(context.Background(), "sha28")
	require.NoError(t, err)

	assert.Equal(t, "/repos/mrwebwork/spotify/git/commits/sha28", mock.requests[0].URL.Path)
	assert.True(t, strings.HasPrefix(commit.Message, "Merge pull request"))
}

func TestMergePullRequest(t *testing.T) {
	var sent string
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			data, _ := io.ReadAll(req.Body)
			sent = string(data)
			return respond(http.StatusOK, `{"sha": "6dcb09b", "merged": true, "message": "Pull Request successfully merged"}`), nil
		},
	}

	result, err := newTestClient(mock).MergePullRequest(context.Background(), 27, "squash")
	require.NoError(t, err)

	req := mock.requests[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/repos/mrwebwork/spotify/pulls/27/merge", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"merge_method": "squash"}`, sent)

	assert.True(t, result.Success)
	assert.Equal(t, "6dcb09b", result.SHA)
	assert.Equal(t, 27, result.PrNumber)
}

func TestMergePullRequestRejected(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return respond(http.StatusMethodNotAllowed, `{"message": "Pull Request is not mergeable"}`), nil
		},
	}

	_, err := newTestClient(mock).MergePullRequest(context.Background(), 27, "merge")

	assert.ErrorIs(t, err, models.ErrNotMergeable)
	assert.Equal(t, 1, mock.calls())
}

func TestContextCancelStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			cancel()
			return nil, context.Canceled
		},
	}

	_, err := newTestClient(mock).FetchPullRequest(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.calls())
}
