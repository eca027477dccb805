package models

import "errors"

var (
	ErrPRNotFound        = errors.New("pull request not found")
	ErrMissingRepository = errors.New("could not determine repository owner/name; specify --owner and --repo")
	ErrMissingToken      = errors.New("GitHub token required; set GITHUB_TOKEN, use --token, or run 'gh auth login'")
	ErrNotMergeable      = errors.New("pull request is not ready to merge")
	ErrManualStrategy    = errors.New("recommended strategy is manual; resolve the blockers first")
	ErrMergeNotSupported = errors.New("provider cannot merge pull requests")
)
