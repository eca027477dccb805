package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-lipgloss.Width(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	yesColor, noColor := ColorDarkGray, ColorDarkGray
	yesText, noText := ColorWhite, ColorWhite
	yesIcon, noIcon := " ", " "
	if selection == 0 {
		yesColor, yesText, yesIcon = ColorGreen, ColorGreen, ">"
	} else {
		noColor, noText, noIcon = ColorRed, ColorRed, ">"
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesColor)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesText).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(noColor)
	noTextStyle := lipgloss.NewStyle().Foreground(noText).Bold(true)

	line1 := yesStyle.Render("  ┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("  │"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", yesIcon)),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", noIcon)),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("  └────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// Spinner frames using braille characters
var SpinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner returns the spinner character at the given frame index
func Spinner(frame int) string {
	return string(SpinnerFrames[frame%len(SpinnerFrames)])
}

// Arrow returns an arrow indicator for selection
func Arrow(selected bool) string {
	if selected {
		return "▶ "
	}
	return "  "
}

// ConfidenceBar renders a confidence score as a bar out of 100.
// Scores outside 0..100 are drawn clamped but printed as is.
func ConfidenceBar(confidence int, width int) string {
	shown := min(max(confidence, 0), 100)
	filled := shown * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	barStyle := lipgloss.NewStyle().Foreground(ConfidenceColor(confidence))
	percentStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		barStyle.Render(fmt.Sprintf("[%s]", bar)),
		percentStyle.Render(fmt.Sprintf("%d%%", confidence)),
	)
}

// StrategyBadge renders the upper-cased strategy in its color
func StrategyBadge(strategy models.Strategy) string {
	return lipgloss.NewStyle().
		Foreground(StrategyColor(strategy)).
		Bold(true).
		Render(fmt.Sprintf("%-6s", strategy.Display()))
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// PRListItem renders one analysed PR row for the dashboard list
func PRListItem(pr models.PRAnalysis, highlighted bool, width int) string {
	icon, iconColor := StatusIcon(pr.Status())
	iconStyle := lipgloss.NewStyle().Foreground(iconColor)

	var titleStyle lipgloss.Style
	if highlighted {
		titleStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	} else {
		titleStyle = lipgloss.NewStyle().Foreground(ColorWhite)
	}
	dimStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)

	// Fixed columns: arrow, icon, number, badge, confidence, timeline
	title := truncate(pr.Facts.Title, max(width-48, 10))
	confidence := lipgloss.NewStyle().
		Foreground(ConfidenceColor(pr.Recommendation.Confidence)).
		Render(fmt.Sprintf("%3d%%", pr.Recommendation.Confidence))

	return fmt.Sprintf("%s%s %s %s %s  %s",
		titleStyle.Render(Arrow(highlighted)),
		iconStyle.Render(icon),
		dimStyle.Render(fmt.Sprintf("#%-4d", pr.Facts.ID)),
		StrategyBadge(pr.Recommendation.Strategy),
		confidence,
		titleStyle.Render(title),
	)
}

// BulletList renders items as indented bullet lines
func BulletList(items []string, bullet string, color lipgloss.Color) []string {
	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("     %s %s", style.Render(bullet), item))
	}
	return lines
}

// ColumnBox creates a bordered column with title
// If height > 0, content is padded/truncated to exactly that many lines
func ColumnBox(content string, title string, color lipgloss.Color, isActive bool, width int, height int) string {
	borderColor := color
	if !isActive {
		borderColor = ColorDarkGray
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width)

	fullContent := content
	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		fullContent = titleStyle.Render(" "+title+" ") + "\n" + content
	}

	// Manually pad/truncate to fixed height
	if height > 0 {
		lines := strings.Split(fullContent, "\n")
		for len(lines) < height {
			lines = append(lines, "")
		}
		if len(lines) > height {
			lines = lines[:height]
		}
		fullContent = strings.Join(lines, "\n")
	}

	return style.Render(fullContent)
}

// ApplyViewportScroll keeps the highlighted line visible below a fixed header
func ApplyViewportScroll(lines []string, headerLines int, highlightedLine int, visibleLines int) string {
	if len(lines) <= headerLines+visibleLines {
		return strings.Join(lines, "\n")
	}

	header := lines[:headerLines]
	body := lines[headerLines:]

	start := 0
	if highlightedLine >= headerLines {
		idx := highlightedLine - headerLines
		if idx >= visibleLines {
			start = idx - visibleLines + 1
		}
	}
	end := min(start+visibleLines, len(body))

	visible := append(append([]string{}, header...), body[start:end]...)
	return strings.Join(visible, "\n")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
