package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Repository RepositoryConfig `toml:"repository"`
	GitHub     GitHubConfig     `toml:"github"`
	Analysis   AnalysisConfig   `toml:"analysis"`
	Output     OutputConfig     `toml:"output"`
}

// RepositoryConfig names the repository to analyse when no flag is given.
// Empty values fall back to the origin remote of the working directory.
type RepositoryConfig struct {
	Owner string `toml:"owner"`
	Name  string `toml:"name"`
}

type GitHubConfig struct {
	APIURL            string  `toml:"api_url"`
	TokenEnv          string  `toml:"token_env"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	MaxRetries        int     `toml:"max_retries"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Concurrency       int     `toml:"concurrency"`
}

type AnalysisConfig struct {
	OpenPRLimit       int `toml:"open_pr_limit"`
	PatternSampleSize int `toml:"pattern_sample_size"`
}

type OutputConfig struct {
	AnalysisFile string `toml:"analysis_file"`
}

func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:            "https://api.github.com",
			TokenEnv:          "GITHUB_TOKEN",
			TimeoutSeconds:    15,
			MaxRetries:        2,
			RequestsPerSecond: 10,
			Concurrency:       4,
		},
		Analysis: AnalysisConfig{
			OpenPRLimit:       10,
			PatternSampleSize: 20,
		},
		Output: OutputConfig{
			AnalysisFile: "merge-analysis.json",
		},
	}
}

// configPathFunc locates the config file (overridable in tests)
var configPathFunc = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "attms.toml"), nil
}

// Path returns the location of the config file
func Path() (string, error) {
	return configPathFunc()
}

func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.GitHub.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid github.timeout_seconds %d: must not be negative", c.GitHub.TimeoutSeconds)
	}
	if c.GitHub.MaxRetries < 0 {
		return fmt.Errorf("invalid github.max_retries %d: must not be negative", c.GitHub.MaxRetries)
	}
	if c.GitHub.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid github.requests_per_second %g: must not be negative", c.GitHub.RequestsPerSecond)
	}
	return nil
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout returns the per-request GitHub timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.GitHub.TimeoutSeconds) * time.Second
}

func (c *Config) AnalysisPath() string {
	return expandTilde(c.Output.AnalysisFile)
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
