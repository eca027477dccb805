package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotGitHubRemote means the remote URL does not point at github.com
var ErrNotGitHubRemote = errors.New("remote is not a GitHub repository")

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FindRepoRoot walks up from path to the nearest git repository
func FindRepoRoot(path string) (string, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	for {
		if IsGitRepo(path) {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", os.ErrNotExist
		}
		path = parent
	}
}

// DetectGitHubRepo reads owner and repo from the origin remote of the
// repository containing path
func DetectGitHubRepo(path string) (owner, repo string, err error) {
	root, err := FindRepoRoot(path)
	if err != nil {
		return "", "", fmt.Errorf("no git repository at %s: %w", path, err)
	}

	r, err := git.PlainOpen(root)
	if err != nil {
		return "", "", err
	}

	remote, err := r.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to read origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", &GitError{Command: "remote", Output: "origin has no URL"}
	}

	return ParseGitHubURL(urls[0])
}

// ParseGitHubURL extracts owner and repo from https, ssh:// and scp-style
// (git@github.com:owner/repo.git) remote URLs
func ParseGitHubURL(remoteURL string) (owner, repo string, err error) {
	rest := strings.TrimSpace(remoteURL)

	switch {
	case strings.HasPrefix(rest, "git@github.com:"):
		rest = strings.TrimPrefix(rest, "git@github.com:")
	default:
		idx := strings.Index(rest, "github.com/")
		if idx < 0 || !strings.Contains(rest[:idx], "://") {
			return "", "", fmt.Errorf("%w: %s", ErrNotGitHubRemote, remoteURL)
		}
		rest = rest[idx+len("github.com/"):]
	}

	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrNotGitHubRemote, remoteURL)
	}

	return parts[0], parts[1], nil
}

// GitError provides better context for git failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}
