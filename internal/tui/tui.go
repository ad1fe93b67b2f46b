// Package tui implements the easysurf settings window.
package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ErrAlreadyOpen is returned by Run when another settings window is attached
// to the daemon. That window has been asked to come forward.
var ErrAlreadyOpen = errors.New("settings window already open")

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run opens the settings window and blocks until it is closed.
func Run() error {
	ref := &programRef{}
	model := NewModel(uuid.New().String(), ref)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Store program reference for goroutine sends
	ref.Set(p)
	defer ref.Clear()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok {
		m.close()
		if m.alreadyOpen {
			return ErrAlreadyOpen
		}
	}
	return nil
}
