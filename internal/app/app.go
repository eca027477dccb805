package app

import (
	"context"
	"time"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/scan"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the dashboard state
type Model struct {
	// Configuration
	ctx     context.Context
	scanner *scan.Scanner
	owner   string
	repo    string
	dryRun  bool

	// Navigation
	screen     Screen
	backScreen Screen // where Esc returns from the merge confirmation
	cursor     int
	shouldQuit bool

	// Data
	analysis    *models.RepositoryAnalysis
	mergeResult *models.MergeResult

	// UI state
	confirmSelection int // 0=Yes, 1=No
	errorMessage     string
	loadingMessage   string
	feedback         string // Brief notice in the status bar, clears on next key
	spinnerFrame     int

	// Merges executed from the dashboard (survives restarts for 24h)
	history []mergeRecord

	// Window size
	width  int
	height int
}

// New creates the dashboard model for one repository
func New(ctx context.Context, scanner *scan.Scanner, owner, repo string, dryRun bool) Model {
	return Model{
		ctx:            ctx,
		scanner:        scanner,
		owner:          owner,
		repo:           repo,
		dryRun:         dryRun,
		screen:         ScreenLoading,
		loadingMessage: "Analyzing pull requests...",
		width:          80,
		height:         24,
		history:        loadHistory(owner, repo),
	}
}

// Init starts the first scan
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		scanCmd(m.ctx, m.scanner),
	)
}

// tickMsg is sent on each tick for the spinner
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// selected returns the PR under the cursor
func (m Model) selected() (models.PRAnalysis, bool) {
	if m.analysis == nil || m.cursor < 0 || m.cursor >= len(m.analysis.ActivePRs) {
		return models.PRAnalysis{}, false
	}
	return m.analysis.ActivePRs[m.cursor], true
}
