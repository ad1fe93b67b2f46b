// Package poller runs the periodic forecast fetch.
//
// A Poller is either Idle (no timer) or Active (one timer at the interval read
// from settings). Start and Stop are the only transitions, and Start always
// cancels the running timer before scheduling a new one.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/easysurf/easysurf/internal/models"
)

// SettingsReader provides the current settings.
type SettingsReader interface {
	Read() models.Settings
}

// Fetcher performs one forecast request.
type Fetcher interface {
	Fetch(ctx context.Context, s models.Settings) (*models.ForecastResponse, error)
}

// Sink receives poll results.
type Sink interface {
	ApplyUpdate(u models.StatusUpdate)
	ApplyFailure()
}

// Ticker delivers recurring ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker with the given period.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Mode is the poller state.
type Mode int

// Poller states.
const (
	Idle Mode = iota
	Active
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "idle"
}

// Option configures a Poller.
type Option func(*Poller)

// WithTicker replaces the ticker constructor.
func WithTicker(fn TickerFunc) Option {
	return func(p *Poller) { p.newTicker = fn }
}

// WithClock replaces the clock used to stamp updates.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// WithStartHook is called with the settings every Start reads, before the
// first fetch.
func WithStartHook(fn func(models.Settings)) Option {
	return func(p *Poller) { p.onStart = fn }
}

// Poller fetches the forecast immediately on Start and then once per interval.
type Poller struct {
	settings  SettingsReader
	fetcher   Fetcher
	sink      Sink
	newTicker TickerFunc
	now       func() time.Time
	onStart   func(models.Settings)

	mu       sync.Mutex
	cancel   context.CancelFunc // non-nil while Active
	current  models.Settings    // settings read by the last Start
	interval time.Duration
}

// New creates an idle poller.
func New(settings SettingsReader, fetcher Fetcher, sink Sink, opts ...Option) *Poller {
	p := &Poller{
		settings:  settings,
		fetcher:   fetcher,
		sink:      sink,
		newTicker: NewTicker,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start reads the settings, cancels any running timer, fetches once
// immediately and then every Interval minutes.
func (p *Poller) Start() {
	s := p.settings.Read()
	interval := time.Duration(s.Interval) * time.Minute

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.current = s
	p.interval = interval
	ticker := p.newTicker(interval)
	p.mu.Unlock()

	log.Printf("[poller] Active: every %s for %.4f,%.4f via %s", interval, s.Latitude, s.Longitude, s.APIURL)
	if p.onStart != nil {
		p.onStart(s)
	}
	go p.run(ctx, ticker)
}

// Stop cancels the timer. An in-flight fetch is allowed to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	log.Printf("[poller] Idle")
}

// Mode reports whether a timer is running.
func (p *Poller) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return Active
	}
	return Idle
}

// Interval returns the period of the current or last timer.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Settings returns the settings read by the last Start.
func (p *Poller) Settings() models.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Poller) run(ctx context.Context, ticker Ticker) {
	defer ticker.Stop()

	// In-flight requests are never cancelled by Stop or a restart.
	_ = p.FetchOnce(context.Background())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			_ = p.FetchOnce(context.Background())
		}
	}
}

// FetchOnce performs one poll with the current settings. Failures force the
// status to gray and are logged; an empty forecast leaves the status as is.
// The returned error is informational only.
func (p *Poller) FetchOnce(ctx context.Context) error {
	s := p.settings.Read()

	resp, err := p.fetcher.Fetch(ctx, s)
	if err != nil {
		log.Printf("[poller] Fetch failed: %v", err)
		p.sink.ApplyFailure()
		return err
	}

	entry := resp.Current()
	if entry == nil {
		log.Printf("[poller] Empty forecast, keeping current status")
		return nil
	}

	update := models.NewStatusUpdate(*entry, p.now())
	log.Printf("[poller] %s (level=%q wave=%.2fm period=%.1fs time=%s)",
		update.Label, entry.SurfLevel, entry.WaveHeight, entry.PeakWavePeriod, entry.Time)
	p.sink.ApplyUpdate(update)
	return nil
}
