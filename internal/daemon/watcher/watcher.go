// Package watcher handles file system watching for the daemon.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay coalesces bursts of events for the watched file.
const DebounceDelay = 100 * time.Millisecond

// Watcher calls a function whenever a single file changes on disk.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func()
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for path. onChange runs on its own goroutine after
// each debounced change.
func New(path string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		onChange:  onChange,
		done:      make(chan struct{}),
	}, nil
}

// Start watches the file's directory. The directory is created if missing,
// since the file itself may not exist until the first save.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	log.Printf("[watcher] Watching %s", w.path)
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Atomic saves (write temp, rename over target) arrive as Create or Rename.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(DebounceDelay, func() {
		select {
		case <-w.done:
			return
		default:
		}
		log.Printf("[watcher] %s changed", filepath.Base(w.path))
		w.onChange()
	})
}
