// Package engine runs the daemon's collectors and funnels their
// updates into the store.
package engine

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/internal/daemon/collector"
	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/state"
)

const persistInterval = 2 * time.Second

// Engine fans collector updates into the store and keeps the on-disk
// snapshot current.
type Engine struct {
	store      *store.Store
	collectors []collector.Collector
	logger     *logrus.Entry
}

// New creates an engine around the given store.
func New(st *store.Store, logger *logrus.Entry) *Engine {
	return &Engine{store: st, logger: logger}
}

// Register adds a collector. Call before Start.
func (e *Engine) Register(c collector.Collector) {
	e.collectors = append(e.collectors, c)
}

// Store returns the engine's state store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Start launches every collector and consumes their updates until ctx
// is cancelled, then waits for all of them to wind down.
func (e *Engine) Start(ctx context.Context) {
	updates := make(chan store.Update, 100)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.consume(ctx, updates)
	}()

	for _, c := range e.collectors {
		wg.Add(1)
		go func(c collector.Collector) {
			defer wg.Done()
			log := e.logger.WithField("collector", c.Name())
			log.Info("Starting collector")
			if err := c.Run(ctx, e.store, updates); err != nil {
				log.WithError(err).Error("Collector failed")
			}
		}(c)
	}

	wg.Wait()
}

// consume applies updates to the store, persisting the snapshot at
// most once per persistInterval so bursts don't hammer the disk. The
// final state is persisted once more on shutdown so the last results
// stay readable after the daemon stops.
func (e *Engine) consume(ctx context.Context, updates <-chan store.Update) {
	var lastSave time.Time
	for {
		select {
		case <-ctx.Done():
			e.persist()
			return
		case u := <-updates:
			e.store.ApplyUpdate(u)
			if time.Since(lastSave) > persistInterval {
				e.persist()
				lastSave = time.Now()
			}
		}
	}
}

func (e *Engine) persist() {
	if err := state.Save(e.store.Snapshot(os.Getpid())); err != nil {
		e.logger.WithError(err).Warn("Failed to persist state snapshot")
	}
}
