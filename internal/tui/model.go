package tui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/grpc"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/rpc"
	"github.com/easysurf/easysurf/internal/surf"
)

// Model is the settings window.
type Model struct {
	ref      *programRef
	clientID string

	conn         *grpc.ClientConn
	client       *rpc.Client
	connected    bool
	cancelStream context.CancelFunc

	form       *SettingsForm
	status     *rpc.CurrentStatus
	violations []string
	saving     bool

	err         error
	showSaved   bool
	focused     bool
	alreadyOpen bool

	width  int
	height int
	now    func() time.Time
}

// NewModel creates the settings window model.
func NewModel(clientID string, ref *programRef) *Model {
	return &Model{
		ref:      ref,
		clientID: clientID,
		form:     NewSettingsForm(),
		width:    80,
		now:      time.Now,
	}
}

// Init starts the daemon connection.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("easysurf settings"),
		connectDaemonCmd(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetSize(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DaemonConnectedMsg:
		m.conn = msg.Conn
		m.client = rpc.NewClient(msg.Conn)
		m.connected = true
		m.err = nil
		ctx, cancel := context.WithCancel(context.Background())
		m.cancelStream = cancel
		return m, tea.Batch(
			loadSettingsCmd(m.client),
			loadStatusCmd(m.client),
			subscribeCmd(ctx, m.client, m.clientID, m.ref),
		)

	case SettingsLoadedMsg:
		m.form.Load(msg.Settings)
		return m, nil

	case StatusLoadedMsg:
		m.status = msg.Status
		return m, nil

	case StatusUpdateMsg:
		m.status = applyUpdate(m.status, msg.Update)
		return m, nil

	case FocusMsg:
		m.focused = true
		return m, clearFocusCmd()

	case ClearFocusMsg:
		m.focused = false
		return m, nil

	case SavedMsg:
		m.saving = false
		if msg.Result.Success {
			m.violations = nil
			m.showSaved = true
			return m, clearSavedCmd()
		}
		m.violations = msg.Result.Errors
		if len(m.violations) == 0 && msg.Result.Error != "" {
			m.violations = []string{msg.Result.Error}
		}
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil

	case AlreadyOpenMsg:
		m.alreadyOpen = true
		return m, tea.Quit

	case StreamEndedMsg:
		m.connected = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.err = errors.New("daemon disconnected")
		}
		return m, nil

	case ErrorMsg:
		m.saving = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, windowKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, windowKeys.Save):
		return m, m.save()

	case key.Matches(msg, windowKeys.Refresh):
		if m.client == nil {
			return m, nil
		}
		return m, refreshCmd(m.client)

	case key.Matches(msg, windowKeys.Next):
		m.form.FocusNext()
		return m, nil

	case key.Matches(msg, windowKeys.Prev):
		m.form.FocusPrev()
		return m, nil
	}

	m.err = nil
	input, cmd := m.form.Focused().Update(msg)
	*m.form.Focused() = input
	return m, cmd
}

// save validates locally before sending. Invalid numbers cannot be encoded,
// and the daemon repeats the same checks.
func (m *Model) save() tea.Cmd {
	if !m.form.Loaded() || m.saving {
		return nil
	}

	c := m.form.Candidate()
	if verr := config.Validate(c); verr != nil {
		m.violations = verr.Messages
		return nil
	}
	m.violations = nil

	if m.client == nil {
		m.err = errors.New("daemon not connected")
		return nil
	}
	m.saving = true
	return saveSettingsCmd(m.client, m.clientID, &rpc.Settings{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Interval:  c.Interval,
		APIURL:    c.APIURL,
	})
}

// close releases the daemon connection after the program exits.
func (m *Model) close() {
	if m.cancelStream != nil {
		m.cancelStream()
	}
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			log.Printf("[settings] close connection: %v", err)
		}
	}
}

// View renders the window.
func (m *Model) View() string {
	color := surf.Gray
	if m.status != nil {
		color = surf.ParseColor(m.status.Color)
	}
	inner := max(m.width-4, 20)

	statusPanel := panelStyle
	if m.focused {
		statusPanel = focusedPanelStyle
	}

	sections := []string{
		renderHeader(color, m.width),
		statusPanel.Width(inner).Render(renderStatus(m.status, inner-2, m.now())),
		panelStyle.Width(inner).Render(m.form.View()),
	}
	if len(m.violations) > 0 {
		lines := make([]string, len(m.violations))
		for i, v := range m.violations {
			lines[i] = errorTextStyle.Render("✗ " + v)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if m.focused {
		sections = append(sections, lipgloss.NewStyle().Foreground(colorCyan).Render("Settings is already open here."))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	bar := renderStatusBar(m, m.width)

	if m.height > 0 {
		gap := m.height - lipgloss.Height(body) - lipgloss.Height(bar)
		if gap > 0 {
			body += strings.Repeat("\n", gap)
		}
	}
	return body + "\n" + bar
}
