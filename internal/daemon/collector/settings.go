package collector

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/logging"
	"github.com/hooktools/core/pkg/paths"
	"github.com/hooktools/core/settings"
)

// SettingsCollector watches the global settings file and tells
// subscribers to re-read it when it changes. It feeds no file state into
// the store; the notification is the whole product.
type SettingsCollector struct {
	dir      string
	debounce time.Duration
	logger   *logrus.Entry
}

// NewSettingsCollector watches the XDG config directory for settings
// changes, collapsing writes within the debounce window.
func NewSettingsCollector(debounce time.Duration) *SettingsCollector {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &SettingsCollector{
		dir:      paths.ConfigDir(),
		debounce: debounce,
		logger:   logging.NewLogger("settings"),
	}
}

// Name returns the collector's name.
func (c *SettingsCollector) Name() string { return "settings" }

// Run blocks until ctx is cancelled. A missing config directory is not
// an error; the daemon just runs without live settings reloads.
func (c *SettingsCollector) Run(ctx context.Context, st *store.Store, updates chan<- store.Update) error {
	if c.dir == "" {
		return nil
	}
	if _, err := os.Stat(c.dir); err != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return err
	}

	// Removal broadcasts too: consumers re-read and land on defaults or
	// the next candidate file.
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	lastChange := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !settings.IsGlobalSettingsFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&ops == 0 {
				continue
			}
			if time.Since(lastChange[event.Name]) < c.debounce {
				continue
			}
			lastChange[event.Name] = time.Now()

			c.logger.WithField("file", event.Name).Info("Settings file changed")
			st.BroadcastSettingsReload(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.WithError(err).Warn("Settings watcher error")
		}
	}
}
