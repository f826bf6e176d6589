// Package watch re-runs analysis when watched source files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"a11yscan/internal/logging"
)

// Stats tracks watcher activity for debugging.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher monitors a directory tree for changes to supported source files
// and invokes a callback after changes settle. Rapid saves are debounced
// so an editor writing a file three times in a row triggers one run.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	root        string
	extensions  map[string]bool
	onChange    func(paths []string)
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// New creates a watcher over root for files with the given extensions
// (leading dot included). onChange receives the settled batch of changed
// paths.
func New(root string, extensions []string, onChange func(paths []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}

	return &Watcher{
		watcher:     fsw,
		root:        root,
		extensions:  exts,
		onChange:    onChange,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// SetDebounce overrides the settle window. Only valid before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounceDur = d
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// fsnotify watches directories, not globs: walk the tree and add every
	// directory, skipping the usual vendored trees.
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if addErr := w.watcher.Add(path); addErr != nil {
			logging.WatchDebug("cannot watch %s: %v", path, addErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Watch("watching %s (%d dirs)", w.root, len(w.watcher.WatchList()))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
	logging.Watch("stopped")
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// GetStats returns a snapshot of watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New subdirectories need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(filepath.Base(event.Name)) {
				if err := w.watcher.Add(event.Name); err != nil {
					logging.WatchDebug("cannot watch new dir %s: %v", event.Name, err)
				}
			}
			return
		}
	}

	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name

	switch {
	case event.Op&fsnotify.Create != 0:
		w.stats.FilesCreated++
	case event.Op&fsnotify.Write != 0:
		w.stats.FilesModified++
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		w.stats.FilesDeleted++
	default:
		return
	}

	logging.WatchDebug("change: %s (%s)", event.Name, event.Op)
	w.debounceMap[event.Name] = time.Now()
}

// flushSettled fires the callback for paths whose last event is older
// than the debounce window.
func (w *Watcher) flushSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.debounceMap {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		w.stats.RunsTriggered++
	}
	w.mu.Unlock()

	if len(settled) > 0 && w.onChange != nil {
		logging.Watch("%d files settled, re-running analysis", len(settled))
		w.onChange(settled)
	}
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", ".git", "dist", "build", ".a11yscan":
		return true
	}
	return false
}
