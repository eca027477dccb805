package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/wahlandcase/attuned.mergestrategy/internal/logging"
	"github.com/wahlandcase/attuned.mergestrategy/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10
		return m, tickCmd()

	// Task result messages
	case analysisLoadedResult:
		return m.handleAnalysisLoaded(msg)

	case mergeCompleteResult:
		return m.handleMergeComplete(msg)
	}

	return m, nil
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear feedback on any keypress
	m.feedback = ""

	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenList:
		return m.handleListKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenMergeConfirm:
		return m.handleConfirmationKey(msg)
	case ScreenMergeResult:
		return m.handleMergeResultKey(msg)
	case ScreenError:
		return m.handleErrorKey(msg)
	case ScreenLoading, ScreenMerging:
		if msg.String() == "q" {
			m.shouldQuit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := 0
	if m.analysis != nil {
		count = len(m.analysis.ActivePRs)
	}

	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if count > 0 {
			m.cursor = count - 1 // Wrap to bottom
		}
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		} else {
			m.cursor = 0 // Wrap to top
		}
	case "enter":
		if count > 0 {
			m.screen = ScreenDetail
		}
	case "m":
		return m.startMerge(ScreenList)
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = ScreenList
	case "m":
		return m.startMerge(ScreenDetail)
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m Model) handleConfirmationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "left", "right", "tab":
		m.confirmSelection = 1 - m.confirmSelection
	case "y":
		m.confirmSelection = 0
		return m.confirmMerge()
	case "n", "esc":
		m.screen = m.backScreen
	case "enter":
		if m.confirmSelection == 0 {
			return m.confirmMerge()
		}
		m.screen = m.backScreen
	}
	return m, nil
}

func (m Model) handleMergeResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "enter", "esc":
		// A real merge changes the open PR list
		if m.mergeResult != nil && !m.mergeResult.DryRun {
			return m.refresh()
		}
		m.screen = ScreenList
	}
	return m, nil
}

func (m Model) handleErrorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "enter", "esc":
		if m.analysis == nil {
			return m.refresh()
		}
		m.screen = ScreenList
	}
	return m, nil
}

// startMerge asks for confirmation when the PR under the cursor can be merged
func (m Model) startMerge(from Screen) (tea.Model, tea.Cmd) {
	pr, ok := m.selected()
	if !ok {
		return m, nil
	}

	if pr.Recommendation.Strategy == models.StrategyManual {
		m.feedback = fmt.Sprintf("PR #%d needs manual resolution", pr.Facts.ID)
		return m, nil
	}
	if !pr.Facts.IsReady() {
		m.feedback = fmt.Sprintf("PR #%d is %s, only ready PRs can be merged", pr.Facts.ID, pr.Status().Display())
		return m, nil
	}

	m.backScreen = from
	m.confirmSelection = 0
	m.screen = ScreenMergeConfirm
	return m, nil
}

func (m Model) confirmMerge() (tea.Model, tea.Cmd) {
	pr, ok := m.selected()
	if !ok {
		m.screen = ScreenList
		return m, nil
	}

	m.screen = ScreenMerging
	return m, mergeCmd(m.ctx, m.scanner, pr, m.dryRun)
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.screen = ScreenLoading
	m.loadingMessage = "Analyzing pull requests..."
	return m, scanCmd(m.ctx, m.scanner)
}

func (m Model) handleAnalysisLoaded(msg analysisLoadedResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.screen = ScreenError
		m.errorMessage = msg.err.Error()
		return m, nil
	}

	m.analysis = msg.analysis
	if m.cursor >= len(m.analysis.ActivePRs) {
		m.cursor = max(len(m.analysis.ActivePRs)-1, 0)
	}
	m.screen = ScreenList
	return m, nil
}

func (m Model) handleMergeComplete(msg mergeCompleteResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.screen = ScreenError
		switch {
		case errors.Is(msg.err, models.ErrMergeNotSupported):
			m.errorMessage = "This data source cannot merge pull requests"
		default:
			m.errorMessage = msg.err.Error()
		}
		logging.Logger.Error("Merge failed", "error", msg.err)
		return m, nil
	}

	m.mergeResult = msg.result
	m.screen = ScreenMergeResult

	if msg.result.Success && !msg.result.DryRun {
		record := mergeRecord{
			Owner:    m.owner,
			Repo:     m.repo,
			PrNumber: msg.result.PrNumber,
			PrTitle:  msg.result.PrTitle,
			Strategy: msg.result.Strategy,
			SHA:      msg.result.SHA,
			MergedAt: time.Now(),
		}
		m.history = append(m.history, record)
		recordMerge(record)
	}
	return m, nil
}
