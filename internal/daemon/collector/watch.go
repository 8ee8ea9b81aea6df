package collector

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/pkg/discover"
	"github.com/sirupsen/logrus"
)

// WatchCollector revalidates files as soon as they change on disk. It
// watches the scan roots plus the parent directory of every known file,
// refreshing the directory set from the store as scans find new files.
type WatchCollector struct {
	roots    []string
	debounce time.Duration
	logger   *logrus.Logger
}

// NewWatchCollector creates a new WatchCollector. The debounce window
// collapses rapid successive writes to the same file.
func NewWatchCollector(roots []string, debounce time.Duration) *WatchCollector {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return &WatchCollector{
		roots:    roots,
		debounce: debounce,
		logger:   logger,
	}
}

// Name returns the collector's name.
func (c *WatchCollector) Name() string { return "watch" }

// Run starts the file watcher. It blocks until the context is cancelled.
func (c *WatchCollector) Run(ctx context.Context, st *store.Store, updates chan<- store.Update) error {
	watcher, err := daemon.NewWatcher(c.debounce, func(path string, removed bool) {
		if removed {
			select {
			case updates <- store.Update{
				Type:    store.UpdateFileRemoved,
				Source:  "watch",
				Payload: path,
			}:
			case <-ctx.Done():
			}
			return
		}

		kind, ok := discover.Classify(filepath.Base(path))
		if !ok {
			return
		}
		select {
		case updates <- store.Update{
			Type:    store.UpdateFile,
			Source:  "watch",
			Scanned: 1,
			Payload: daemon.ValidateFile(path, kind),
		}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	for _, root := range c.roots {
		if err := watcher.WatchDir(root); err != nil {
			c.logger.WithError(err).Warnf("Failed to watch root %s", root)
		}
	}

	go watcher.Start(ctx)

	// The scan collector finds files in subdirectories the watcher does not
	// cover yet; pick their parent directories up from the store.
	refresh := func() {
		current := st.Get()
		for path := range current.Configs {
			if err := watcher.WatchDir(filepath.Dir(path)); err != nil {
				c.logger.WithError(err).Debugf("Failed to watch %s", filepath.Dir(path))
			}
		}
		for path := range current.Manifests {
			if err := watcher.WatchDir(filepath.Dir(path)); err != nil {
				c.logger.WithError(err).Debugf("Failed to watch %s", filepath.Dir(path))
			}
		}
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh()
		}
	}
}
