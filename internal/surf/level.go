// Package surf maps forecast surf levels to display colors and labels.
package surf

import "strings"

// Color is the tray status color.
type Color string

// Status colors. Gray is both the startup value and the error value.
const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
	Gray   Color = "gray"
)

// Surf levels reported by the forecast service.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Colors lists every color in display order.
var Colors = []Color{Green, Yellow, Red, Gray}

// ColorForLevel returns the color for a surf level. Unknown levels map to Gray.
func ColorForLevel(level string) Color {
	switch level {
	case LevelBeginner:
		return Green
	case LevelIntermediate:
		return Yellow
	case LevelAdvanced:
		return Red
	default:
		return Gray
	}
}

// LabelForColor returns the human-readable status label for a color.
func LabelForColor(c Color) string {
	switch c {
	case Green:
		return "Good (Beginner)"
	case Yellow:
		return "Moderate (Intermediate)"
	case Red:
		return "Challenging (Advanced)"
	default:
		return "Unknown"
	}
}

// LevelForColor is the inverse of ColorForLevel. Gray has no level.
func LevelForColor(c Color) string {
	switch c {
	case Green:
		return LevelBeginner
	case Yellow:
		return LevelIntermediate
	case Red:
		return LevelAdvanced
	default:
		return ""
	}
}

// ParseColor parses a color name, case-insensitively. Anything else is Gray.
func ParseColor(s string) Color {
	switch c := Color(strings.ToLower(strings.TrimSpace(s))); c {
	case Green, Yellow, Red:
		return c
	default:
		return Gray
	}
}

// Emoji returns the glyph shown when the tray icon cannot be drawn.
func Emoji(c Color) string {
	switch c {
	case Green:
		return "🟢"
	case Yellow:
		return "🟡"
	case Red:
		return "🔴"
	default:
		return "⚪"
	}
}

// Tooltip returns the tray tooltip for a color.
func Tooltip(c Color) string {
	return "Surf Conditions: " + LabelForColor(c)
}
