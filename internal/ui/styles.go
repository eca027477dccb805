package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wahlandcase/attuned.mergestrategy/internal/models"
)

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8
)

// ConfigureOutput picks the colour profile for w; plain ASCII when w is not a
// terminal so piped reports stay free of escape codes
func ConfigureOutput(w io.Writer) {
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}

func StrategyColor(strategy models.Strategy) lipgloss.Color {
	switch strategy {
	case models.StrategyMerge:
		return ColorBlue
	case models.StrategySquash:
		return ColorGreen
	case models.StrategyRebase:
		return ColorPurple
	case models.StrategyManual:
		return ColorOrange
	default:
		return ColorWhite
	}
}

// StatusIcon returns the icon and color of a PR status
func StatusIcon(status models.PRStatus) (string, lipgloss.Color) {
	switch status {
	case models.StatusReady:
		return "✓", ColorGreen
	case models.StatusConflicted:
		return "✗", ColorRed
	case models.StatusDraft:
		return "✎", ColorYellow
	default:
		return "⏳", ColorBlue
	}
}

func PriorityColor(priority models.Priority) lipgloss.Color {
	switch priority {
	case models.PriorityUrgent:
		return ColorRed
	case models.PriorityHigh:
		return ColorOrange
	case models.PriorityLow:
		return ColorGreen
	default:
		return ColorBlue
	}
}

// ConfidenceColor grades a confidence score
func ConfidenceColor(confidence int) lipgloss.Color {
	switch {
	case confidence >= 80:
		return ColorGreen
	case confidence >= 60:
		return ColorYellow
	default:
		return ColorRed
	}
}
