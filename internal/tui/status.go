package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/easysurf/easysurf/internal/rpc"
	"github.com/easysurf/easysurf/internal/surf"
)

func statusColor(c surf.Color) lipgloss.AdaptiveColor {
	switch c {
	case surf.Green:
		return colorGreen
	case surf.Yellow:
		return colorYellow
	case surf.Red:
		return colorRed
	default:
		return colorDim
	}
}

// renderStatus draws the current conditions and the last successful update.
func renderStatus(st *rpc.CurrentStatus, width int, now time.Time) string {
	if st == nil {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading status...")
	}

	c := surf.ParseColor(st.Color)
	dot := lipgloss.NewStyle().Foreground(statusColor(c)).Render("●")
	label := st.Label
	if label == "" {
		label = surf.LabelForColor(c)
	}
	lines := []string{dot + " " + sectionHeaderStyle.Render(label)}

	if u := st.LastUpdate; u != nil {
		lines = append(lines, detailStyle.Render(fmt.Sprintf("Waves %.1f m  Period %.0f s  Level %s", u.WaveHeight, u.Period, u.Level)))
		if u.Time != "" {
			lines = append(lines, detailStyle.Render("Forecast for "+u.Time))
		}
		if u.FetchedAt != nil {
			at := u.FetchedAt.AsTime().Local()
			ago := now.Sub(at).Truncate(time.Second)
			lines = append(lines, detailStyle.Render(fmt.Sprintf("Updated %s (%s ago)", at.Format("15:04:05"), ago)))
		}
	} else {
		lines = append(lines, detailStyle.Render("No forecast received yet"))
	}

	if c == surf.Gray && st.Error != "" {
		lines = append(lines, errorTextStyle.Render(st.Error))
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

// applyUpdate folds a pushed update into the displayed status.
func applyUpdate(st *rpc.CurrentStatus, u *rpc.StatusUpdate) *rpc.CurrentStatus {
	if u == nil {
		return st
	}
	return &rpc.CurrentStatus{Color: u.Color, Label: u.Label, LastUpdate: u}
}
