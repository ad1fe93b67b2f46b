package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/easysurf/easysurf/internal/buildinfo"
	"github.com/easysurf/easysurf/internal/surf"
)

func renderHeader(c surf.Color, width int) string {
	dot := lipgloss.NewStyle().Foreground(statusColor(c)).Render("●")
	name := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render("easysurf")

	left := fmt.Sprintf(" %s %s  Settings", dot, name)
	right := hintStyle.Render(buildinfo.Version) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
