package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/rpc"
)

// Form field indexes.
const (
	fieldLatitude = iota
	fieldLongitude
	fieldInterval
	fieldAPIURL
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Latitude",
	"Longitude",
	"Interval (minutes)",
	"API URL",
}

// SettingsForm edits the four monitor settings.
type SettingsForm struct {
	inputs     [fieldCount]textinput.Model
	focusIndex int
	loaded     bool
	width      int
}

// NewSettingsForm creates an empty form with the latitude field focused.
func NewSettingsForm() *SettingsForm {
	f := &SettingsForm{}
	placeholders := [fieldCount]string{"-23.5505", "-46.6333", "30", "http://localhost:8080"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.inputs[fieldLatitude].Focus()
	return f
}

// Load fills the form from persisted settings.
func (f *SettingsForm) Load(s *rpc.Settings) {
	f.inputs[fieldLatitude].SetValue(formatNumber(s.Latitude))
	f.inputs[fieldLongitude].SetValue(formatNumber(s.Longitude))
	f.inputs[fieldInterval].SetValue(formatNumber(s.Interval))
	f.inputs[fieldAPIURL].SetValue(s.APIURL)
	f.loaded = true
}

// Loaded reports whether settings have been loaded.
func (f *SettingsForm) Loaded() bool {
	return f.loaded
}

// Value returns the raw text of a field.
func (f *SettingsForm) Value(field int) string {
	return f.inputs[field].Value()
}

// SetValue replaces the raw text of a field.
func (f *SettingsForm) SetValue(field int, v string) {
	f.inputs[field].SetValue(v)
}

// Candidate parses the form. Unparseable numbers become NaN so validation
// reports them.
func (f *SettingsForm) Candidate() config.Candidate {
	return config.ParseCandidate(
		f.Value(fieldLatitude),
		f.Value(fieldLongitude),
		f.Value(fieldInterval),
		f.Value(fieldAPIURL),
	)
}

// SetSize updates the input widths.
func (f *SettingsForm) SetSize(width int) {
	f.width = width
	for i := range f.inputs {
		f.inputs[i].Width = max(width-24, 10)
	}
}

// FocusNext moves to the next field.
func (f *SettingsForm) FocusNext() {
	f.inputs[f.focusIndex].Blur()
	f.focusIndex = (f.focusIndex + 1) % fieldCount
	f.inputs[f.focusIndex].Focus()
}

// FocusPrev moves to the previous field.
func (f *SettingsForm) FocusPrev() {
	f.inputs[f.focusIndex].Blur()
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = fieldCount - 1
	}
	f.inputs[f.focusIndex].Focus()
}

// FocusIndex returns the currently focused field index.
func (f *SettingsForm) FocusIndex() int {
	return f.focusIndex
}

// Focused returns the focused input model for update forwarding.
func (f *SettingsForm) Focused() *textinput.Model {
	return &f.inputs[f.focusIndex]
}

// View renders the form.
func (f *SettingsForm) View() string {
	if !f.loaded {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading settings...")
	}

	lines := make([]string, 0, fieldCount)
	for i, label := range fieldLabels {
		line := settingsLabelStyle.Render(label+":") + " " + f.inputs[i].View()
		if i == f.focusIndex {
			line = settingsCursorStyle.Width(f.width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
