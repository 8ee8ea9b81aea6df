// Package store provides the in-memory state store for the watch daemon.
package store

import (
	"time"

	"github.com/hooktools/core/state"
)

// State is everything the daemon currently knows, keyed by file path.
type State struct {
	Configs   map[string]*state.FileState `json:"configs"`
	Manifests map[string]*state.FileState `json:"manifests"`
	Roots     []string                    `json:"roots"`
	StartedAt time.Time                   `json:"started_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// UpdateType names the kind of change an Update carries.
type UpdateType string

const (
	UpdateConfigs        UpdateType = "configs"
	UpdateManifests      UpdateType = "manifests"
	UpdateFile           UpdateType = "file"
	UpdateFileRemoved    UpdateType = "file_removed"
	UpdateSettingsReload UpdateType = "settings_reload"
)

// Update is a single state change flowing from a collector through the
// store to subscribers.
type Update struct {
	Type    UpdateType
	Source  string // collector that produced it: "config", "manifest" or "watch"
	Scanned int    // files examined to produce this update
	Payload interface{}
}
