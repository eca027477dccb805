package app

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
	"github.com/wahlandcase/attuned.mergestrategy/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// contentWidth returns the usable content width, adapting to terminal size
func (m Model) contentWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	headerLines := 2
	if m.dryRun {
		headerLines++
	}
	statusHeight := 3

	// Available height for content = total - header - gaps - status - box border/padding
	availableHeight := m.height - headerLines - 2 - statusHeight - 4
	if availableHeight < 6 {
		availableHeight = 6
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, "")

	outerBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPurple).
		Width(m.contentWidth()).
		Padding(1, 2)
	sections = append(sections, outerBox.Render(m.renderContent(availableHeight)))

	sections = append(sections, m.renderStatusBar())

	content := strings.Join(sections, "\n")

	// Center horizontally in the terminal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	repoStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	lines := []string{
		titleStyle.Render("🔀 Merge Strategy Dashboard") + "  " + repoStyle.Render(m.owner+"/"+m.repo),
	}
	if m.dryRun {
		warningStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, warningStyle.Render("⚠ DRY RUN MODE"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContent(availableHeight int) string {
	switch m.screen {
	case ScreenLoading:
		return m.renderLoading()
	case ScreenList:
		return m.renderList(availableHeight)
	case ScreenDetail:
		return m.renderDetail()
	case ScreenMergeConfirm:
		return m.renderMergeConfirm()
	case ScreenMerging:
		return m.renderMerging()
	case ScreenMergeResult:
		return m.renderMergeResult()
	case ScreenError:
		return m.renderError()
	default:
		return ""
	}
}

func (m Model) renderLoading() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	textStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)

	loadingText := fmt.Sprintf("%s %s", spinnerStyle.Render(ui.Spinner(m.spinnerFrame)), textStyle.Render(m.loadingMessage))

	// Center the text within the box
	centeredStyle := lipgloss.NewStyle().Width(m.contentWidth() - 6).Align(lipgloss.Center)

	return "\n\n" + centeredStyle.Render(loadingText) + "\n\n"
}

func (m Model) renderList(availableHeight int) string {
	if m.analysis == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	labelStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite).Bold(true)

	patterns := m.analysis.Patterns
	var lines []string
	lines = append(lines, fmt.Sprintf("   %s %s   %s %d lines   %s %d",
		labelStyle.Render("Preferred:"),
		ui.StrategyBadge(patterns.PreferredStrategy),
		labelStyle.Render("Avg size:"),
		patterns.AveragePRSize,
		labelStyle.Render("Active PRs:"),
		len(m.analysis.ActivePRs),
	))
	if len(m.analysis.Failures) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
		lines = append(lines, warnStyle.Render(fmt.Sprintf("   ⚠ %d PR(s) could not be analyzed", len(m.analysis.Failures))))
	}
	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("ACTIVE PRS", ui.ColorCyan))
	headerLines := len(lines)

	if len(m.analysis.ActivePRs) == 0 {
		successStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen)
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("   %s No open pull requests", successStyle.Render("✓")))
		return strings.Join(lines, "\n")
	}

	highlightedLine := -1
	for i, pr := range m.analysis.ActivePRs {
		if i == m.cursor {
			highlightedLine = len(lines)
		}
		lines = append(lines, ui.PRListItem(pr, i == m.cursor, m.contentWidth()-6))
	}

	var historyLines []string
	if len(m.history) > 0 {
		historyLines = append(historyLines, "")
		historyLines = append(historyLines, ui.SectionHeader("MERGED TODAY", ui.ColorGreen))
		for _, rec := range m.history {
			historyLines = append(historyLines, fmt.Sprintf("   %s #%d %s %s",
				lipgloss.NewStyle().Foreground(ui.ColorGreen).Render("✓"),
				rec.PrNumber,
				ui.StrategyBadge(rec.Strategy),
				dimStyle.Render(rec.PrTitle),
			))
		}
	}

	visible := availableHeight - headerLines - len(historyLines)
	if visible < 3 {
		visible = 3
	}
	return ui.ApplyViewportScroll(lines, headerLines, highlightedLine, visible) + strings.Join(prefixNewline(historyLines), "")
}

func prefixNewline(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\n" + l
	}
	return out
}

func (m Model) renderDetail() string {
	pr, ok := m.selected()
	if !ok {
		return ""
	}
	facts, rec := pr.Facts, pr.Recommendation

	labelStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	icon, iconColor := ui.StatusIcon(pr.Status())
	priority := pr.Status().Priority()

	var lines []string
	lines = append(lines, ui.SectionHeader(fmt.Sprintf("PR #%d", facts.ID), ui.ColorCyan))
	lines = append(lines, "   "+labelStyle.Render(facts.Title))
	if facts.URL != "" {
		lines = append(lines, "   "+lipgloss.NewStyle().Foreground(ui.ColorCyan).Render(facts.URL))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s %s   %s %s",
		lipgloss.NewStyle().Foreground(iconColor).Render(icon+" "+pr.Status().Display()),
		dimStyle.Render("priority"),
		lipgloss.NewStyle().Foreground(ui.PriorityColor(priority)).Bold(true).Render(priority.Display()),
		dimStyle.Render(facts.HeadRef+" → "+facts.BaseRef),
	))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s %s", labelStyle.Render("Strategy:  "), ui.StrategyBadge(rec.Strategy)))
	lines = append(lines, fmt.Sprintf("   %s %s", labelStyle.Render("Confidence:"), ui.ConfidenceBar(rec.Confidence, 20)))
	lines = append(lines, fmt.Sprintf("   %s %s", labelStyle.Render("Timeline:  "), rec.TimelineEstimate))
	lines = append(lines, fmt.Sprintf("   %s +%d/-%d, %d files, %d commits",
		labelStyle.Render("Changes:   "), facts.Additions, facts.Deletions, facts.ChangedFiles, facts.Commits))

	if len(rec.Prerequisites) > 0 {
		lines = append(lines, "")
		lines = append(lines, ui.SectionHeader("PREREQUISITES", ui.ColorOrange))
		lines = append(lines, ui.BulletList(rec.Prerequisites, "□", ui.ColorOrange)...)
	}

	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("REASONING", ui.ColorBlue))
	lines = append(lines, ui.BulletList(rec.Reasoning, "•", ui.ColorBlue)...)

	if len(rec.Risks) > 0 {
		lines = append(lines, "")
		lines = append(lines, ui.SectionHeader("RISKS", ui.ColorRed))
		lines = append(lines, ui.BulletList(rec.Risks, "⚠", ui.ColorYellow)...)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderMergeConfirm() string {
	pr, ok := m.selected()
	if !ok {
		return ""
	}

	var lines []string
	lines = append(lines, ui.SectionHeader("Confirm Merge", ui.ColorMagenta))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   Execute %s merge for PR #%d?", ui.StrategyBadge(pr.Recommendation.Strategy), pr.Facts.ID))
	lines = append(lines, "   "+pr.Facts.Title)
	lines = append(lines, "")

	if m.dryRun {
		warningStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, warningStyle.Render("   ⚠ DRY RUN: No actual changes will be made"))
		lines = append(lines, "")
	}

	lines = append(lines, ui.YesNoButtons(m.confirmSelection))

	return strings.Join(lines, "\n")
}

func (m Model) renderMerging() string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
	statusStyle := lipgloss.NewStyle().Foreground(ui.ColorMagenta)

	var lines []string
	lines = append(lines, ui.SectionHeader("Merging PR", ui.ColorMagenta))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s %s",
		spinnerStyle.Render(ui.Spinner(m.spinnerFrame)),
		statusStyle.Render("Merging..."),
	))

	return strings.Join(lines, "\n")
}

func (m Model) renderMergeResult() string {
	result := m.mergeResult
	if result == nil {
		return ""
	}

	headerColor := ui.ColorGreen
	icon := "✓"
	if !result.Success {
		headerColor = ui.ColorRed
		icon = "✗"
	}
	iconStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)

	var lines []string
	lines = append(lines, ui.SectionHeader("Merge Result", headerColor))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s PR #%d %s", iconStyle.Render(icon), result.PrNumber, ui.StrategyBadge(result.Strategy)))
	if result.Message != "" {
		lines = append(lines, "   "+result.Message)
	}
	if result.SHA != "" {
		commit := models.CommitInfo{SHA: result.SHA}
		lines = append(lines, "   "+dimStyle.Render("commit "+commit.ShortSHA()))
	}
	lines = append(lines, "")
	lines = append(lines, "   Press Enter to continue")

	return strings.Join(lines, "\n")
}

func (m Model) renderError() string {
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, errorStyle.Render("   ✗ Error"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s", m.errorMessage))
	lines = append(lines, "")
	if m.analysis == nil {
		lines = append(lines, "   Press Enter to retry")
	} else {
		lines = append(lines, "   Press Enter to go back")
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var hints []string

	switch m.screen {
	case ScreenList:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
			ui.KeyBinding("Enter", "Details", ui.ColorGreen),
			ui.KeyBinding("m", "Merge", ui.ColorMagenta),
			ui.KeyBinding("r", "Refresh", ui.ColorCyan),
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	case ScreenDetail:
		hints = []string{
			ui.KeyBinding("m", "Merge", ui.ColorMagenta),
			ui.KeyBinding("r", "Refresh", ui.ColorCyan),
			ui.KeyBinding("Esc", "Back", ui.ColorYellow),
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	case ScreenMergeConfirm:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("y/n", "Quick", ui.ColorGreen),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
			ui.KeyBinding("Esc", "Back", ui.ColorYellow),
		}
	case ScreenMergeResult, ScreenError:
		hints = []string{
			ui.KeyBinding("Enter", "Continue", ui.ColorGreen),
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	default:
		hints = []string{
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	}

	bar := strings.Join(hints, "  ")
	if m.feedback != "" {
		bar = lipgloss.NewStyle().Foreground(ui.ColorYellow).Render(m.feedback) + "   " + bar
	}

	statusStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorDarkGray).
		Width(m.contentWidth()).
		Padding(0, 1)

	return statusStyle.Render(bar)
}
