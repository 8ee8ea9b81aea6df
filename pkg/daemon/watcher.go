package daemon

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/pkg/discover"
	"github.com/sirupsen/logrus"
)

// Watcher watches directories for changes to pre-commit configuration and
// manifest files. Events for other files in the same directories are ignored.
type Watcher struct {
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	lastChange map[string]time.Time
	watched    map[string]bool
	mu         sync.Mutex
	logger     *logrus.Entry
	onChange   func(path string, removed bool)
}

// NewWatcher creates a Watcher that reports changes through onChange.
// The debounce window collapses rapid successive writes to the same file;
// editors commonly emit several events per save.
func NewWatcher(debounce time.Duration, onChange func(path string, removed bool)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:    fw,
		debounce:   debounce,
		lastChange: make(map[string]time.Time),
		watched:    make(map[string]bool),
		logger:     logging.NewLogger("watcher"),
		onChange:   onChange,
	}, nil
}

// WatchDir registers a directory with the watcher. Adding the same
// directory twice is a no-op; directories that no longer exist are skipped.
func (w *Watcher) WatchDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	w.logger.Debugf("Watching directory: %s", dir)
	return nil
}

// WatchedDirs returns the directories currently registered.
func (w *Watcher) WatchedDirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		dirs = append(dirs, dir)
	}
	return dirs
}

// Start begins watching for file changes. It blocks until the context is
// cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, known := discover.Classify(filepath.Base(event.Name)); !known {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.handleChange(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Removal is final, no debounce needed
				w.logger.Infof("File removed: %s", event.Name)
				w.onChange(event.Name, true)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

// handleChange processes a file change with per-path debouncing.
func (w *Watcher) handleChange(path string) {
	w.mu.Lock()

	// Debounce rapid writes
	elapsed := time.Since(w.lastChange[path])
	if elapsed < w.debounce {
		w.mu.Unlock()
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(path), elapsed)
		return
	}
	w.lastChange[path] = time.Now()
	w.mu.Unlock()

	w.logger.Infof("File changed: %s", path)
	w.onChange(path, false)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
