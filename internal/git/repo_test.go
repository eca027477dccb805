package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubURL(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/mrwebwork/spotify.git", "mrwebwork", "spotify"},
		{"https://github.com/mrwebwork/spotify", "mrwebwork", "spotify"},
		{"https://github.com/mrwebwork/spotify/", "mrwebwork", "spotify"},
		{"git@github.com:mrwebwork/spotify.git", "mrwebwork", "spotify"},
		{"ssh://git@github.com/mrwebwork/spotify.git", "mrwebwork", "spotify"},
		{"https://token@github.com/mrwebwork/spotify.git", "mrwebwork", "spotify"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			owner, repo, err := ParseGitHubURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestParseGitHubURLRejects(t *testing.T) {
	for _, url := range []string{
		"https://gitlab.com/mrwebwork/spotify.git",
		"git@bitbucket.org:mrwebwork/spotify.git",
		"https://github.com/mrwebwork",
		"https://github.com/a/b/c",
		"",
	} {
		t.Run(url, func(t *testing.T) {
			_, _, err := ParseGitHubURL(url)
			assert.ErrorIs(t, err, ErrNotGitHubRemote)
		})
	}
}

func TestDetectGitHubRepo(t *testing.T) {
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = r.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:mrwebwork/spotify.git"},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "libs", "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))

	owner, repo, err := DetectGitHubRepo(sub)
	require.NoError(t, err)
	assert.Equal(t, "mrwebwork", owner)
	assert.Equal(t, "spotify", repo)
}

func TestDetectGitHubRepoWithoutOrigin(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, _, err = DetectGitHubRepo(dir)
	assert.Error(t, err)
}
