package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

const historyMaxAge = 24 * time.Hour

// mergeRecord is a merge executed from the dashboard
type mergeRecord struct {
	Owner    string          `json:"owner"`
	Repo     string          `json:"repo"`
	PrNumber int             `json:"pr_number"`
	PrTitle  string          `json:"pr_title"`
	Strategy models.Strategy `json:"strategy"`
	SHA      string          `json:"sha"`
	MergedAt time.Time       `json:"merged_at"`
}

// historyPathFunc locates the history file (overridable in tests)
var historyPathFunc = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "attms-history.json"), nil
}

func readHistory() []mergeRecord {
	path, err := historyPathFunc()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var records []mergeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// loadHistory returns recent merges of owner/repo, pruning old entries of
// every repository from the file
func loadHistory(owner, repo string) []mergeRecord {
	records := readHistory()

	// Filter to entries within 24h
	cutoff := time.Now().Add(-historyMaxAge)
	var valid []mergeRecord
	for _, r := range records {
		if r.MergedAt.After(cutoff) {
			valid = append(valid, r)
		}
	}

	// Rewrite file if we pruned anything
	if len(valid) != len(records) {
		saveHistory(valid)
	}

	var result []mergeRecord
	for _, r := range valid {
		if r.Owner == owner && r.Repo == repo {
			result = append(result, r)
		}
	}
	return result
}

// recordMerge appends a merge to the history file
func recordMerge(record mergeRecord) {
	saveHistory(append(readHistory(), record))
}

func saveHistory(records []mergeRecord) {
	path, err := historyPathFunc()
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return
	}

	_ = os.MkdirAll(filepath.Dir(path), 0755)
	_ = os.WriteFile(path, data, 0644)
}
