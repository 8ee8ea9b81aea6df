// Package state holds the daemon's shared view of validated files and
// persists the last published snapshot. Status commands read the snapshot
// to report recent results while the daemon is down.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/renameio/v2"
	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/pkg/paths"
)

// FileState is the validation state of one discovered file.
type FileState struct {
	Path        string    `json:"path"`
	Kind        string    `json:"kind"`
	Valid       bool      `json:"valid"`
	Errors      []string  `json:"errors,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	Repos       int       `json:"repos,omitempty"`
	Hooks       int       `json:"hooks,omitempty"`
	ModifiedAt  time.Time `json:"modified_at,omitempty"`
	ValidatedAt time.Time `json:"validated_at"`
}

// Snapshot is the daemon's world view at one point in time.
type Snapshot struct {
	PID       int                   `json:"pid,omitempty"`
	StartedAt time.Time             `json:"started_at,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
	Roots     []string              `json:"roots,omitempty"`
	Configs   map[string]*FileState `json:"configs"`
	Manifests map[string]*FileState `json:"manifests"`
}

// SortedFiles flattens a file map into a slice sorted by path.
func SortedFiles(files map[string]*FileState) []*FileState {
	result := make([]*FileState, 0, len(files))
	for _, f := range files {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// Counts returns the number of valid and invalid files across both kinds.
func (s *Snapshot) Counts() (valid, invalid int) {
	for _, files := range []map[string]*FileState{s.Configs, s.Manifests} {
		for _, f := range files {
			if f.Valid {
				valid++
			} else {
				invalid++
			}
		}
	}
	return valid, invalid
}

// Save persists the snapshot. The write is atomic so readers never observe
// a torn file.
func Save(snap *Snapshot) error {
	path := paths.SnapshotPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeWriteFailed, "failed to create state directory").
			WithDetail("path", path)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal snapshot")
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeWriteFailed, "failed to write snapshot").
			WithDetail("path", path)
	}
	return nil
}

// Load reads the last persisted snapshot. A missing file returns nil
// without error: no daemon has published yet.
func Load() (*Snapshot, error) {
	data, err := os.ReadFile(paths.SnapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read snapshot").
			WithDetail("path", paths.SnapshotPath())
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to parse snapshot").
			WithDetail("path", paths.SnapshotPath())
	}
	return &snap, nil
}

// Clear removes the persisted snapshot.
func Clear() error {
	err := os.Remove(paths.SnapshotPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
