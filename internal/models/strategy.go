package models

import "strings"

// Strategy is a merge approach recommended for a pull request
type Strategy string

const (
	// StrategyMerge creates a merge commit and keeps every PR commit
	StrategyMerge Strategy = "merge"
	// StrategySquash collapses the PR into one commit on the base branch
	StrategySquash Strategy = "squash"
	// StrategyRebase replays the PR commits on top of the base branch
	StrategyRebase Strategy = "rebase"
	// StrategyManual means a human has to intervene before merging
	StrategyManual Strategy = "manual"
)

// Strategies lists every known strategy in display order
var Strategies = []Strategy{StrategyMerge, StrategySquash, StrategyRebase, StrategyManual}

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool {
	switch s {
	case StrategyMerge, StrategySquash, StrategyRebase, StrategyManual:
		return true
	default:
		return false
	}
}

// Display returns the upper-cased strategy name used in reports
func (s Strategy) Display() string {
	return strings.ToUpper(string(s))
}

// MergeMethod returns the GitHub merge_method for this strategy.
// Manual has no method.
func (s Strategy) MergeMethod() (string, bool) {
	switch s {
	case StrategyMerge, StrategySquash, StrategyRebase:
		return string(s), true
	default:
		return "", false
	}
}
