package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	if m.showSaved {
		return renderSavedBar(width)
	}

	left := " " + keyHint(windowKeys.Save.Help().Key, "save") + "  " +
		keyHint(windowKeys.Next.Help().Key, "next") + "  " +
		keyHint(windowKeys.Refresh.Help().Key, "refresh") + "  " +
		keyHint(windowKeys.Quit.Help().Key, "close")

	right := ""
	if m.connected {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("Connected") + " "
	} else {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Disconnected") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
