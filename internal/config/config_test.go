package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "nested", "attms.toml")
	orig := configPathFunc
	configPathFunc = func() (string, error) { return path, nil }
	t.Cleanup(func() { configPathFunc = orig })
	return path
}

func TestLoadWritesDefaults(t *testing.T) {
	path := useTempConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data := `
[repository]
owner = "mrwebwork"
name = "spotify"

[github]
timeout_seconds = 30
concurrency = 8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mrwebwork", cfg.Repository.Owner)
	assert.Equal(t, "spotify", cfg.Repository.Name)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 8, cfg.GitHub.Concurrency)
	// Unset keys keep their defaults
	assert.Equal(t, "GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	assert.Equal(t, 10, cfg.Analysis.OpenPRLimit)
	assert.Equal(t, "merge-analysis.json", cfg.AnalysisPath())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed toml", data: "[github\n"},
		{name: "negative retries", data: "[github]\nmax_retries = -1\n"},
		{name: "negative timeout", data: "[github]\ntimeout_seconds = -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := useTempConfig(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "out.json"), expandTilde("~/out.json"))
	assert.Equal(t, "out.json", expandTilde("out.json"))
}
