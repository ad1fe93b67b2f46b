// Package presenter keeps the tray icon, title, tooltip and menu header in
// sync with the current status color.
package presenter

import (
	"log"
	"sync"

	"github.com/easysurf/easysurf/internal/surf"
)

// Surface is the part of the OS tray the presenter draws on.
type Surface interface {
	SetIcon(icon []byte)
	SetTitle(title string)
	SetTooltip(tooltip string)
	SetHeader(title string)
}

// Renderer produces encoded icon bytes for a color.
type Renderer func(c surf.Color) ([]byte, error)

// Option configures a Presenter.
type Option func(*Presenter)

// WithRenderer replaces the icon renderer.
func WithRenderer(r Renderer) Option {
	return func(p *Presenter) { p.render = r }
}

// Presenter renders status changes onto a Surface.
type Presenter struct {
	surface Surface
	render  Renderer

	mu      sync.Mutex
	current surf.Color
}

// New creates a presenter that draws with the platform's default icon format.
func New(surface Surface, opts ...Option) *Presenter {
	format := DefaultFormat()
	p := &Presenter{
		surface: surface,
		render: func(c surf.Color) ([]byte, error) {
			return RenderIcon(c, format)
		},
		current: surf.Gray,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HeaderTitle is the text of the disabled menu header for a color.
func HeaderTitle(c surf.Color) string {
	return "Current Status: " + surf.LabelForColor(c)
}

// Show re-renders the tray for a color. If the icon cannot be drawn the
// emoji glyph is shown as the title instead; tooltip and header are always
// updated.
func (p *Presenter) Show(c surf.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = c

	icon, err := p.render(c)
	if err != nil {
		log.Printf("[tray] Icon rendering failed, using text fallback: %v", err)
		p.surface.SetTitle(surf.Emoji(c))
	} else {
		p.surface.SetIcon(icon)
		p.surface.SetTitle("")
	}

	p.surface.SetTooltip(surf.Tooltip(c))
	p.surface.SetHeader(HeaderTitle(c))
}

// Current returns the color last shown.
func (p *Presenter) Current() surf.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
