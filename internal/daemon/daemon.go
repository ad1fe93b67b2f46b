// Package daemon wires the settings store, poller, tray presenter and
// settings bridge into the running easysurfd process.
package daemon

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/easysurf/easysurf/internal/buildinfo"
	"github.com/easysurf/easysurf/internal/config"
	"github.com/easysurf/easysurf/internal/daemon/bridge"
	"github.com/easysurf/easysurf/internal/daemon/launcher"
	"github.com/easysurf/easysurf/internal/daemon/poller"
	"github.com/easysurf/easysurf/internal/daemon/presenter"
	"github.com/easysurf/easysurf/internal/daemon/server"
	"github.com/easysurf/easysurf/internal/daemon/state"
	"github.com/easysurf/easysurf/internal/daemon/watcher"
	"github.com/easysurf/easysurf/internal/forecast"
	"github.com/easysurf/easysurf/internal/models"
)

// WindowLauncher opens a new settings window.
type WindowLauncher interface {
	Launch() error
}

// Options configures a Daemon. Zero values select the production defaults.
type Options struct {
	// Port for the bridge server; 0 picks a free port.
	Port int
	// SettingsPath defaults to ~/.easysurf/settings.yaml.
	SettingsPath string
	// Surface is where status is drawn. Nil runs headless.
	Surface presenter.Surface
	Launcher WindowLauncher
	Fetcher  poller.Fetcher
	// OnQuit is called after the poller has stopped, to end the process.
	OnQuit func()
	// OnPollerStart receives the settings each poller (re)start uses.
	OnPollerStart func(models.Settings)
}

// Daemon is the controller of the easysurfd process.
type Daemon struct {
	store     *config.SettingsStore
	state     *state.State
	poller    *poller.Poller
	presenter *presenter.Presenter
	launcher  WindowLauncher
	watcher   *watcher.Watcher
	server    *server.Server
	onQuit    func()

	quitOnce sync.Once
	serveErr chan error
}

// New creates a daemon and binds its bridge server.
func New(opts Options) (*Daemon, error) {
	path := opts.SettingsPath
	if path == "" {
		p, err := config.GlobalSettingsFile()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve settings path: %w", err)
		}
		path = p
	}

	d := &Daemon{
		store:    config.NewSettingsStore(path),
		state:    state.New(),
		launcher: opts.Launcher,
		onQuit:   opts.OnQuit,
		serveErr: make(chan error, 1),
	}
	if d.launcher == nil {
		d.launcher = launcher.New()
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = forecast.NewClient()
	}
	var pollerOpts []poller.Option
	if opts.OnPollerStart != nil {
		pollerOpts = append(pollerOpts, poller.WithStartHook(opts.OnPollerStart))
	}
	d.poller = poller.New(d.store, fetcher, d.state, pollerOpts...)

	if opts.Surface != nil {
		d.presenter = presenter.New(opts.Surface)
		d.state.OnColor(d.presenter.Show)
	}

	w, err := watcher.New(path, d.settingsChanged)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings watcher: %w", err)
	}
	d.watcher = w

	srv, err := server.New(opts.Port, bridge.New(d.store, d.poller, d.state), d)
	if err != nil {
		w.Stop()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	d.server = srv

	return d, nil
}

// Start shows the initial gray status, starts serving the bridge, watches
// settings.yaml and starts the poller.
func (d *Daemon) Start() {
	log.Printf("[daemon] easysurf %s starting", buildinfo.Version)

	if d.presenter != nil {
		d.presenter.Show(d.state.Color())
	}

	go func() {
		if err := d.server.Serve(); err != nil {
			log.Printf("[daemon] Server error: %v", err)
			d.serveErr <- err
		}
	}()

	if err := d.watcher.Start(); err != nil {
		log.Printf("[daemon] Failed to watch settings file: %v", err)
	}

	d.poller.Start()
}

// Stop tears down the background components. It is safe to call after Quit.
func (d *Daemon) Stop() {
	d.poller.Stop()
	d.watcher.Stop()
	d.server.Stop()
}

// SettingsPath returns the settings file the daemon reads and watches.
func (d *Daemon) SettingsPath() string {
	return d.store.Path()
}

// Port returns the bridge server port.
func (d *Daemon) Port() int {
	return d.server.Port()
}

// ServeErr delivers a fatal server error.
func (d *Daemon) ServeErr() <-chan error {
	return d.serveErr
}

// OpenSettings focuses the open settings window, or launches one.
func (d *Daemon) OpenSettings() {
	if d.state.Focus() {
		log.Println("[daemon] Settings window already open, focusing")
		return
	}
	if !d.state.BeginLaunch() {
		log.Println("[daemon] Settings window is already starting")
		return
	}
	if err := d.launcher.Launch(); err != nil {
		log.Printf("[daemon] %v", err)
		d.state.AbortLaunch()
	}
}

// Refresh polls immediately.
func (d *Daemon) Refresh() {
	_ = d.poller.FetchOnce(context.Background())
}

// Quit cancels the poller timer, then ends the process.
func (d *Daemon) Quit() {
	d.quitOnce.Do(func() {
		log.Println("[daemon] Quitting")
		d.poller.Stop()
		if d.onQuit != nil {
			d.onQuit()
		}
	})
}

// RequestShutdown quits on behalf of a bridge client.
func (d *Daemon) RequestShutdown() {
	d.Quit()
}

// PollerState reports the poller mode and interval.
func (d *Daemon) PollerState() (string, time.Duration) {
	return d.poller.Mode().String(), d.poller.Interval()
}

// WindowOpen reports whether a settings window is attached.
func (d *Daemon) WindowOpen() bool {
	return d.state.WindowOpen()
}

// settingsChanged restarts the poller after settings.yaml was edited outside
// the bridge. Saves made through the bridge already restarted it, so they
// compare equal here and are ignored.
func (d *Daemon) settingsChanged() {
	if d.poller.Mode() != poller.Active {
		return
	}
	if d.store.Read() == d.poller.Settings() {
		return
	}
	log.Println("[daemon] settings.yaml changed on disk, restarting poller")
	d.poller.Start()
}
