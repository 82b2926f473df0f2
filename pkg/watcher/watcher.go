// Package watcher reruns work when a model or script file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipparndt/godim/internal/logger"
)

// DefaultDebounce collapses the burst of writes editors produce on save
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls a handler once per debounced change of any watched file
type Watcher struct {
	watcher  *fsnotify.Watcher
	log      *logger.Logger
	debounce time.Duration

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	timer   *time.Timer
	changed []string
}

// New creates a watcher. A nil log discards messages.
func New(debounce time.Duration, log *logger.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  w,
		log:      log.WithPrefix("watch"),
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Add watches files. Their parent directories are watched so that editors
// replacing a file by rename are still noticed.
func (w *Watcher) Add(files ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		dir := filepath.Dir(absPath)
		if !w.dirs[dir] {
			if err := w.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}
		w.files[absPath] = true
		w.log.Debug("watching %s", absPath)
	}
	return nil
}

// Files returns the watched file paths
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// Run delivers changes to handler until ctx is done. The handler receives
// every file changed during one debounce window and runs on a single goroutine.
func (w *Watcher) Run(ctx context.Context, handler func(changed []string)) error {
	fire := make(chan []string, 1)
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(event.Name, fire)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error: %v", err)

		case changed := <-fire:
			w.log.Info("%d file(s) changed", len(changed))
			handler(changed)
		}
	}
}

func (w *Watcher) schedule(name string, fire chan<- []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[filepath.Clean(name)] {
		return
	}
	w.changed = appendUnique(w.changed, filepath.Clean(name))

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		changed := w.changed
		w.changed = nil
		w.mu.Unlock()

		select {
		case fire <- changed:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
