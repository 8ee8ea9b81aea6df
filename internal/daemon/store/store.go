package store

import (
	"sync"
	"time"

	"github.com/hooktools/core/state"
)

// Store holds the daemon's in-memory view of every discovered file.
// All methods are safe for concurrent use, and subscribers receive
// each update as it is applied.
type Store struct {
	mu          sync.RWMutex
	state       *State
	subscribers map[chan Update]struct{}
}

// New creates an empty store for the given scan roots.
func New(roots []string) *Store {
	return &Store{
		state: &State{
			Configs:   make(map[string]*state.FileState),
			Manifests: make(map[string]*state.FileState),
			Roots:     roots,
			StartedAt: time.Now(),
		},
		subscribers: make(map[chan Update]struct{}),
	}
}

// Get returns a copy of the current state. The file maps are copied so
// callers can iterate without holding the lock.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := *s.state
	copied.Configs = copyFiles(s.state.Configs)
	copied.Manifests = copyFiles(s.state.Manifests)
	return copied
}

// GetConfigs returns all config file states sorted by path.
func (s *Store) GetConfigs() []*state.FileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return state.SortedFiles(s.state.Configs)
}

// GetManifests returns all manifest file states sorted by path.
func (s *Store) GetManifests() []*state.FileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return state.SortedFiles(s.state.Manifests)
}

// Snapshot converts the current state into a persistable snapshot.
func (s *Store) Snapshot(pid int) *state.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &state.Snapshot{
		PID:       pid,
		StartedAt: s.state.StartedAt,
		UpdatedAt: s.state.UpdatedAt,
		Roots:     s.state.Roots,
		Configs:   copyFiles(s.state.Configs),
		Manifests: copyFiles(s.state.Manifests),
	}
}

// ApplyUpdate folds an update into the state and fans it out to
// subscribers.
func (s *Store) ApplyUpdate(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch u.Type {
	case UpdateConfigs:
		if files, ok := u.Payload.(map[string]*state.FileState); ok {
			s.state.Configs = files
		}
	case UpdateManifests:
		if files, ok := u.Payload.(map[string]*state.FileState); ok {
			s.state.Manifests = files
		}
	case UpdateFile:
		if f, ok := u.Payload.(*state.FileState); ok {
			s.fileMap(f.Kind)[f.Path] = f
		}
	case UpdateFileRemoved:
		if path, ok := u.Payload.(string); ok {
			delete(s.state.Configs, path)
			delete(s.state.Manifests, path)
		}
	}
	s.state.UpdatedAt = time.Now()
	s.notify(u)
}

// BroadcastSettingsReload tells subscribers that the tool settings file
// changed on disk. The stored state is untouched.
func (s *Store) BroadcastSettingsReload(file string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.notify(Update{
		Type:    UpdateSettingsReload,
		Source:  "settings",
		Payload: file,
	})
}

// notify sends u to every subscriber without blocking. A subscriber
// that has fallen behind misses the update rather than stalling the
// daemon. Callers must hold s.mu in at least read mode.
func (s *Store) notify(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// Subscribe registers a new update channel. Callers must hand it back
// to Unsubscribe when done.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Buffered so short bursts survive a slow reader.
	ch := make(chan Update, 100)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, ch)
	close(ch)
}

func (s *Store) fileMap(kind string) map[string]*state.FileState {
	if kind == "manifest" {
		return s.state.Manifests
	}
	return s.state.Configs
}

func copyFiles(files map[string]*state.FileState) map[string]*state.FileState {
	copied := make(map[string]*state.FileState, len(files))
	for path, f := range files {
		copied[path] = f
	}
	return copied
}
