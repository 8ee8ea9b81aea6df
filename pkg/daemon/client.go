// Package daemon provides a client interface for the hookcfg watch daemon
// (hookcfgd). It implements a transparent fallback pattern: if the daemon
// is running, talk to its API over the unix socket; if not, fall back to
// in-process scanning and validation.
package daemon

import (
	"context"

	"github.com/hooktools/core/state"
)

// Client defines the interface for reading validation state.
// Both RemoteClient (daemon API) and LocalClient (direct calls) implement it.
type Client interface {
	// GetState returns the complete validation snapshot.
	GetState(ctx context.Context) (*state.Snapshot, error)

	// GetConfigs returns the state of every known configuration file,
	// sorted by path.
	GetConfigs(ctx context.Context) ([]*state.FileState, error)

	// GetManifests returns the state of every known manifest file,
	// sorted by path.
	GetManifests(ctx context.Context) ([]*state.FileState, error)

	// StreamState subscribes to live validation updates. Only the
	// remote client supports it; the local fallback returns an error.
	StreamState(ctx context.Context) (<-chan StateUpdate, error)

	// IsRunning reports whether a daemon is answering.
	IsRunning() bool

	// Close releases whatever connections the client holds.
	Close() error
}

// StateUpdate is one message of the daemon's push feed, shared by the
// SSE and websocket endpoints.
type StateUpdate struct {
	Configs      []*state.FileState `json:"configs,omitempty"`
	Manifests    []*state.FileState `json:"manifests,omitempty"`
	File         *state.FileState   `json:"file,omitempty"`
	RemovedPath  string             `json:"removed_path,omitempty"`
	UpdateType   string             `json:"update_type"` // "initial", "configs", "manifests", "file", "file_removed", "settings_reload"
	Source       string             `json:"source,omitempty"`
	Scanned      int                `json:"scanned,omitempty"`
	SettingsFile string             `json:"settings_file,omitempty"`
}
