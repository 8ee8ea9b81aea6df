package store

import (
	"testing"
	"time"

	"github.com/hooktools/core/state"
)

func fileState(path, kind string, valid bool) *state.FileState {
	return &state.FileState{Path: path, Kind: kind, Valid: valid, ValidatedAt: time.Now()}
}

func TestApplyUpdateReplacesKindMaps(t *testing.T) {
	s := New([]string{"/work"})

	s.ApplyUpdate(Update{
		Type:    UpdateManifests,
		Source:  "manifest",
		Payload: map[string]*state.FileState{"/work/h/.pre-commit-hooks.yaml": fileState("/work/h/.pre-commit-hooks.yaml", "manifest", true)},
	})
	s.ApplyUpdate(Update{
		Type:   UpdateConfigs,
		Source: "config",
		Payload: map[string]*state.FileState{
			"/work/a/.pre-commit-config.yaml": fileState("/work/a/.pre-commit-config.yaml", "config", true),
			"/work/b/.pre-commit-config.yaml": fileState("/work/b/.pre-commit-config.yaml", "config", false),
		},
	})

	got := s.Get()
	if len(got.Configs) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(got.Configs))
	}
	if len(got.Manifests) != 1 {
		t.Errorf("Config update must not clobber manifests, got %d", len(got.Manifests))
	}

	// A fresh config scan replaces the whole config map
	s.ApplyUpdate(Update{
		Type:    UpdateConfigs,
		Source:  "config",
		Payload: map[string]*state.FileState{"/work/a/.pre-commit-config.yaml": fileState("/work/a/.pre-commit-config.yaml", "config", true)},
	})
	if got := s.Get(); len(got.Configs) != 1 {
		t.Errorf("Expected replacement scan to drop stale entries, got %d", len(got.Configs))
	}
}

func TestApplyUpdateUpsertsAndRemovesSingleFiles(t *testing.T) {
	s := New(nil)

	s.ApplyUpdate(Update{Type: UpdateFile, Source: "watch",
		Payload: fileState("/p/.pre-commit-config.yaml", "config", false)})
	s.ApplyUpdate(Update{Type: UpdateFile, Source: "watch",
		Payload: fileState("/p/.pre-commit-hooks.yaml", "manifest", true)})

	got := s.Get()
	if len(got.Configs) != 1 || len(got.Manifests) != 1 {
		t.Fatalf("Expected one file of each kind, got %d configs, %d manifests",
			len(got.Configs), len(got.Manifests))
	}

	// Revalidation overwrites in place
	s.ApplyUpdate(Update{Type: UpdateFile, Source: "watch",
		Payload: fileState("/p/.pre-commit-config.yaml", "config", true)})
	if f := s.Get().Configs["/p/.pre-commit-config.yaml"]; f == nil || !f.Valid {
		t.Errorf("Expected upsert to replace the entry, got %+v", f)
	}

	s.ApplyUpdate(Update{Type: UpdateFileRemoved, Source: "watch",
		Payload: "/p/.pre-commit-config.yaml"})
	if got := s.Get(); len(got.Configs) != 0 {
		t.Errorf("Expected removal, still have %d configs", len(got.Configs))
	}
}

func TestGetConfigsSorted(t *testing.T) {
	s := New(nil)
	s.ApplyUpdate(Update{Type: UpdateConfigs, Source: "config",
		Payload: map[string]*state.FileState{
			"/z/.pre-commit-config.yaml": fileState("/z/.pre-commit-config.yaml", "config", true),
			"/a/.pre-commit-config.yaml": fileState("/a/.pre-commit-config.yaml", "config", true),
		}})

	configs := s.GetConfigs()
	if len(configs) != 2 || configs[0].Path != "/a/.pre-commit-config.yaml" {
		t.Errorf("Expected sorted config list, got %+v", configs)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s := New(nil)
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.ApplyUpdate(Update{Type: UpdateFile, Source: "watch",
		Payload: fileState("/p/.pre-commit-config.yaml", "config", true)})

	select {
	case u := <-ch:
		if u.Type != UpdateFile || u.Source != "watch" {
			t.Errorf("Unexpected update: %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for update")
	}
}

func TestBroadcastSettingsReloadLeavesStateAlone(t *testing.T) {
	s := New(nil)
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	before := s.Get().UpdatedAt
	s.BroadcastSettingsReload("/etc/hookcfg/config.yaml")

	select {
	case u := <-ch:
		if u.Type != UpdateSettingsReload || u.Payload != "/etc/hookcfg/config.yaml" {
			t.Errorf("Unexpected update: %+v", u)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for reload broadcast")
	}
	if !s.Get().UpdatedAt.Equal(before) {
		t.Error("A reload notification must not touch file state")
	}
}

func TestSlowSubscriberDoesNotBlockApply(t *testing.T) {
	s := New(nil)
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// More updates than the channel buffers; nobody reads
		for i := 0; i < 200; i++ {
			s.ApplyUpdate(Update{Type: UpdateFileRemoved, Source: "watch", Payload: "/gone"})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ApplyUpdate blocked on a slow subscriber")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New([]string{"/work"})
	s.ApplyUpdate(Update{Type: UpdateFile, Source: "watch",
		Payload: fileState("/p/.pre-commit-config.yaml", "config", true)})

	snap := s.Snapshot(42)
	if snap.PID != 42 || len(snap.Configs) != 1 {
		t.Fatalf("Unexpected snapshot: %+v", snap)
	}

	delete(snap.Configs, "/p/.pre-commit-config.yaml")
	if got := s.Get(); len(got.Configs) != 1 {
		t.Error("Mutating the snapshot must not affect the store")
	}
}
