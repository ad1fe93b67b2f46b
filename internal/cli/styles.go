package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/easysurf/easysurf/internal/surf"
)

// Adaptive colors matching the settings window palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// Status badge styles.
var (
	badgeGreen  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	badgeYellow = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	badgeRed    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	badgeGray   = lipgloss.NewStyle().Foreground(colorDim)
)

func statusBadge(c surf.Color) lipgloss.Style {
	switch c {
	case surf.Green:
		return badgeGreen
	case surf.Yellow:
		return badgeYellow
	case surf.Red:
		return badgeRed
	default:
		return badgeGray
	}
}
