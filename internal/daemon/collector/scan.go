package collector

import (
	"context"
	"time"

	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/pkg/discover"
	"github.com/sirupsen/logrus"
)

// ScanCollector periodically walks the configured roots, validates every
// discovered file, and replaces the store's file maps wholesale. The full
// rescan catches files created while the watcher was not looking.
type ScanCollector struct {
	roots    []string
	interval time.Duration
	service  *discover.Service
	logger   *logrus.Logger
}

// NewScanCollector creates a new ScanCollector with the specified rescan
// interval. If interval is 0, defaults to 30 seconds.
func NewScanCollector(roots []string, ignores []string, interval time.Duration) (*ScanCollector, error) {
	if interval == 0 {
		interval = 30 * time.Second
	}
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	service, err := discover.NewService(logger, ignores)
	if err != nil {
		return nil, err
	}

	return &ScanCollector{
		roots:    roots,
		interval: interval,
		service:  service,
		logger:   logger,
	}, nil
}

// Name returns the collector's name.
func (c *ScanCollector) Name() string { return "scan" }

// Run starts the discovery and validation loop.
func (c *ScanCollector) Run(ctx context.Context, st *store.Store, updates chan<- store.Update) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	scan := func() {
		start := time.Now()
		defer func() {
			if d := time.Since(start); d > 2*time.Second {
				c.logger.WithField("duration", d).Warn("Slow file scan detected")
			}
		}()

		configs, manifests, err := daemon.CollectOnce(c.service, c.roots)
		if err != nil {
			c.logger.WithError(err).Warn("File scan failed")
			return
		}

		updates <- store.Update{
			Type:    store.UpdateConfigs,
			Source:  "scan",
			Scanned: len(configs),
			Payload: configs,
		}
		updates <- store.Update{
			Type:    store.UpdateManifests,
			Source:  "scan",
			Scanned: len(manifests),
			Payload: manifests,
		}
	}

	// Initial scan
	scan()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			scan()
		}
	}
}
