// Package state holds the daemon's in-memory application state: the current
// status, the attached settings window, and its push channel.
package state

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/easysurf/easysurf/internal/models"
	"github.com/easysurf/easysurf/internal/surf"
)

// ErrWindowOpen is returned when a second settings window tries to attach.
var ErrWindowOpen = errors.New("settings window already open")

// launchGrace bounds how long a launched window may take to attach before
// another launch is allowed.
const launchGrace = 15 * time.Second

// eventBuffer is the push channel capacity; events beyond it are dropped.
const eventBuffer = 16

// EventKind identifies a push event.
type EventKind int

// Push event kinds.
const (
	EventStatus EventKind = iota // a successful, non-empty poll
	EventFocus                   // the tray asked the open window to come forward
)

// Event is delivered to the attached settings window.
type Event struct {
	Kind   EventKind
	Update models.StatusUpdate
}

// Listener is notified of every status color change. Calls are serialized and
// must not apply a new status themselves.
type Listener func(surf.Color)

type window struct {
	id     string
	events chan Event
}

// State is owned by the daemon controller and shared by reference with the
// components that read or mutate it.
type State struct {
	// notifyMu orders status changes with their listener calls, so the last
	// color a listener sees is always the stored one.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	color     surf.Color
	last      *models.StatusUpdate
	window    *window
	launching time.Time
	listeners []Listener
	now       func() time.Time
}

// New creates a state with the initial gray status.
func New() *State {
	return &State{color: surf.Gray, now: time.Now}
}

// OnColor registers a listener for color changes.
func (s *State) OnColor(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Color returns the current status color.
func (s *State) Color() surf.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// LastUpdate returns the most recent successful update, if any.
func (s *State) LastUpdate() (models.StatusUpdate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return models.StatusUpdate{}, false
	}
	return *s.last, true
}

// ApplyUpdate records a successful poll, notifies listeners and pushes the
// update to the attached window.
func (s *State) ApplyUpdate(u models.StatusUpdate) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.color = u.Color
	s.last = &u
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(u.Color)
	}
	s.push(Event{Kind: EventStatus, Update: u})
}

// ApplyFailure forces the status to gray after a failed poll. Nothing is
// pushed to the window.
func (s *State) ApplyFailure() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.color = surf.Gray
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(surf.Gray)
	}
}

// AttachWindow registers the settings window. At most one window may be
// attached; the returned detach function must be called when it closes.
func (s *State) AttachWindow(id string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window != nil {
		return nil, nil, ErrWindowOpen
	}
	w := &window{id: id, events: make(chan Event, eventBuffer)}
	s.window = w
	s.launching = time.Time{}
	log.Printf("[state] Settings window %s attached", id)

	detach := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.window == w {
			s.window = nil
			close(w.events)
			log.Printf("[state] Settings window %s detached", id)
		}
	}
	return w.events, detach, nil
}

// WindowOpen reports whether a settings window is attached.
func (s *State) WindowOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window != nil
}

// BeginLaunch reserves the right to launch a settings window. It returns
// false when a window is attached or a recent launch has not attached yet.
func (s *State) BeginLaunch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window != nil {
		return false
	}
	now := s.now()
	if !s.launching.IsZero() && now.Sub(s.launching) < launchGrace {
		return false
	}
	s.launching = now
	return true
}

// AbortLaunch releases a reservation taken by BeginLaunch.
func (s *State) AbortLaunch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.launching = time.Time{}
}

// Focus asks the attached window to come forward. It reports whether a
// window was attached.
func (s *State) Focus() bool {
	return s.push(Event{Kind: EventFocus})
}

func (s *State) push(ev Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.window == nil {
		return false
	}
	select {
	case s.window.events <- ev:
	default:
		log.Printf("[state] Dropping event for slow settings window %s", s.window.id)
	}
	return true
}
