// Package collector provides the background workers that keep the
// daemon's view of pre-commit files current: a periodic rescan and a
// filesystem watcher.
package collector

import (
	"context"

	"github.com/hooktools/core/internal/daemon/store"
)

// Collector is one background worker. Run blocks until ctx is
// cancelled, emitting results on updates. The store is safe to read
// for context, such as the currently known file paths.
type Collector interface {
	Name() string
	Run(ctx context.Context, st *store.Store, updates chan<- store.Update) error
}
