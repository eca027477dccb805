package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.mergestrategy/internal/config"
	"github.com/wahlandcase/attuned.mergestrategy/internal/git"
	"github.com/wahlandcase/attuned.mergestrategy/internal/github"
	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/scan"
	"github.com/wahlandcase/attuned.mergestrategy/internal/ui"
)

// Overridable in tests
var (
	loadConfig   = config.Load
	detectRepo   = git.DetectGitHubRepo
	resolveToken = github.ResolveToken
)

func setupOutput(cmd *cobra.Command, debug bool) {
	logging.Initialize(debug)
	logging.SetOutput(cmd.ErrOrStderr())
	ui.ConfigureOutput(cmd.OutOrStdout())
}

// session is everything a GitHub-backed command needs
type session struct {
	cfg     *config.Config
	owner   string
	repo    string
	scanner *scan.Scanner
}

// newSession resolves repository and token, then builds the client and scanner.
// Owner and repo come from flags, then the config file, then the origin remote.
func newSession(flags *globalFlags) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	owner, repo := resolveRepository(flags, cfg)
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: pass --owner and --repo, set [repository] in the config, or run inside a clone of the repository", models.ErrMissingRepository)
	}

	token, err := resolveToken(flags.token, cfg.GitHub.TokenEnv)
	if err != nil {
		return nil, fmt.Errorf("%w: pass --token, set $%s, or run gh auth login", err, cfg.GitHub.TokenEnv)
	}

	client := github.NewClient(github.Config{
		BaseURL:           cfg.GitHub.APIURL,
		Token:             token,
		Owner:             owner,
		Repo:              repo,
		Timeout:           cfg.Timeout(),
		MaxRetries:        cfg.GitHub.MaxRetries,
		RetryBackoff:      github.DefaultRetryBackoff,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
	}, nil)

	scanner := scan.New(client, owner, repo, scan.Options{
		Concurrency:       cfg.GitHub.Concurrency,
		OpenPRLimit:       cfg.Analysis.OpenPRLimit,
		PatternSampleSize: cfg.Analysis.PatternSampleSize,
	})

	logging.Logger.Debug("Session ready", "repository", client.Repository(), "api", cfg.GitHub.APIURL)

	return &session{cfg: cfg, owner: owner, repo: repo, scanner: scanner}, nil
}

func resolveRepository(flags *globalFlags, cfg *config.Config) (string, string) {
	owner := firstNonEmpty(flags.owner, cfg.Repository.Owner)
	repo := firstNonEmpty(flags.repo, cfg.Repository.Name)
	if owner != "" && repo != "" {
		return owner, repo
	}

	cwd, err := os.Getwd()
	if err != nil {
		return owner, repo
	}
	remoteOwner, remoteRepo, err := detectRepo(cwd)
	if err != nil {
		logging.Logger.Debug("No GitHub origin remote", "error", err)
		return owner, repo
	}
	return firstNonEmpty(owner, remoteOwner), firstNonEmpty(repo, remoteRepo)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// redirectLogs sends logs to a file while the dashboard owns the terminal.
// Without debug logging is silenced.
func redirectLogs(debug bool) (func(), error) {
	if !debug {
		logging.Discard()
		return func() {}, nil
	}
	f, err := os.OpenFile("attms-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logging.SetOutput(f)
	return func() { _ = f.Close() }, nil
}
