package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// MarshalAnalysis encodes an analysis as indented JSON
func MarshalAnalysis(analysis models.RepositoryAnalysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}

// WriteAnalysis saves the detailed analysis to path, creating parent dirs
func WriteAnalysis(path string, analysis models.RepositoryAnalysis) error {
	data, err := MarshalAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadAnalysis loads an analysis written by WriteAnalysis
func ReadAnalysis(path string) (*models.RepositoryAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var analysis models.RepositoryAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &analysis, nil
}
