// Package bridge is the request/response surface offered to the settings
// window, independent of the transport that carries it.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/daemon/state"
	"github.com/easysurf/easysurf/internal/models"
	"github.com/easysurf/easysurf/internal/surf"
)

// Bridge is the settings window's view of the daemon.
type Bridge interface {
	GetSettings(ctx context.Context) models.Settings
	SaveSettings(ctx context.Context, c config.Candidate) SaveResult
	GetCurrentStatus(ctx context.Context) Status
	// Subscribe attaches the settings window and returns its push channel.
	// The channel is closed by the returned detach function.
	Subscribe(ctx context.Context, windowID string) (<-chan state.Event, func(), error)
	Refresh(ctx context.Context) (Status, error)
}

// SettingsStore reads and writes the persisted settings.
type SettingsStore interface {
	Read() models.Settings
	Write(c config.Candidate) error
}

// Poller is restarted after a successful save and drives manual refreshes.
type Poller interface {
	Start()
	FetchOnce(ctx context.Context) error
}

// SaveResult is the outcome of SaveSettings.
type SaveResult struct {
	Success  bool
	Error    string
	Messages []string // one entry per violated constraint
}

// Status is the current tray status.
type Status struct {
	Color surf.Color
	Label string
	Last  *models.StatusUpdate // most recent successful update, if any
}

// Service implements Bridge on top of the daemon components.
type Service struct {
	store  SettingsStore
	poller Poller
	state  *state.State
}

// New creates a bridge service.
func New(store SettingsStore, poller Poller, st *state.State) *Service {
	return &Service{store: store, poller: poller, state: st}
}

// GetSettings returns the persisted settings merged with defaults.
func (s *Service) GetSettings(ctx context.Context) models.Settings {
	return s.store.Read()
}

// SaveSettings validates and persists the candidate. On success the poller is
// restarted so a new interval or URL takes effect immediately; on failure
// nothing changes and the poller keeps its prior configuration.
func (s *Service) SaveSettings(ctx context.Context, c config.Candidate) SaveResult {
	if err := s.store.Write(c); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			log.Printf("[bridge] Rejected settings: %v", verr)
			return SaveResult{Error: verr.Error(), Messages: verr.Messages}
		}
		log.Printf("[bridge] Failed to save settings: %v", err)
		return SaveResult{Error: fmt.Sprintf("failed to save settings: %v", err)}
	}

	log.Printf("[bridge] Settings saved, restarting poller")
	s.poller.Start()
	return SaveResult{Success: true}
}

// GetCurrentStatus returns the current color and label.
func (s *Service) GetCurrentStatus(ctx context.Context) Status {
	color := s.state.Color()
	st := Status{Color: color, Label: surf.LabelForColor(color)}
	if last, ok := s.state.LastUpdate(); ok {
		st.Last = &last
	}
	return st
}

// Subscribe attaches the settings window. Only one window may be attached; a
// second attempt brings the open one forward and fails with
// state.ErrWindowOpen.
func (s *Service) Subscribe(ctx context.Context, windowID string) (<-chan state.Event, func(), error) {
	events, detach, err := s.state.AttachWindow(windowID)
	if errors.Is(err, state.ErrWindowOpen) {
		s.state.Focus()
	}
	return events, detach, err
}

// Refresh polls immediately and returns the resulting status. A fetch error is
// returned alongside the (gray) status. The fetch outlives the caller: a client
// that hangs up mid-request must not turn the tray gray.
func (s *Service) Refresh(ctx context.Context) (Status, error) {
	err := s.poller.FetchOnce(context.WithoutCancel(ctx))
	return s.GetCurrentStatus(ctx), err
}
