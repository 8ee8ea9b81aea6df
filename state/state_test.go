package state

import (
	"os"
	"testing"
	"time"

	"github.com/hooktools/core/pkg/paths"
)

func setFakeHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOOKCFG_HOME", t.TempDir())
}

func sampleSnapshot() *Snapshot {
	now := time.Now().UTC().Truncate(time.Second)
	return &Snapshot{
		PID:       1234,
		StartedAt: now.Add(-time.Minute),
		UpdatedAt: now,
		Roots:     []string{"/work"},
		Configs: map[string]*FileState{
			"/work/app/.pre-commit-config.yaml": {
				Path:        "/work/app/.pre-commit-config.yaml",
				Kind:        "config",
				Valid:       true,
				Repos:       2,
				Hooks:       5,
				ValidatedAt: now,
			},
			"/work/lib/.pre-commit-config.yaml": {
				Path:        "/work/lib/.pre-commit-config.yaml",
				Kind:        "config",
				Valid:       false,
				Errors:      []string{"repos: must list at least one repository"},
				ValidatedAt: now,
			},
		},
		Manifests: map[string]*FileState{
			"/work/hooks/.pre-commit-hooks.yaml": {
				Path:        "/work/hooks/.pre-commit-hooks.yaml",
				Kind:        "manifest",
				Valid:       true,
				Hooks:       3,
				ValidatedAt: now,
			},
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	setFakeHome(t)

	if err := Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a snapshot")
	}

	if loaded.PID != 1234 {
		t.Errorf("Expected PID 1234, got %d", loaded.PID)
	}
	if len(loaded.Configs) != 2 || len(loaded.Manifests) != 1 {
		t.Errorf("Expected 2 configs and 1 manifest, got %d and %d",
			len(loaded.Configs), len(loaded.Manifests))
	}

	broken := loaded.Configs["/work/lib/.pre-commit-config.yaml"]
	if broken == nil || broken.Valid || len(broken.Errors) != 1 {
		t.Errorf("Invalid file state did not round-trip: %+v", broken)
	}
}

func TestLoadWithoutSnapshot(t *testing.T) {
	setFakeHome(t)

	snap, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap != nil {
		t.Errorf("Expected nil snapshot before any save, got %+v", snap)
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	setFakeHome(t)

	path := paths.SnapshotPath()
	if err := os.MkdirAll(paths.StateDir(), 0755); err != nil {
		t.Fatalf("Failed to create state dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt snapshot: %v", err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for corrupt snapshot")
	}
}

func TestClear(t *testing.T) {
	setFakeHome(t)

	if err := Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	snap, err := Load()
	if err != nil || snap != nil {
		t.Errorf("Expected no snapshot after Clear, got %+v, %v", snap, err)
	}

	if err := Clear(); err != nil {
		t.Errorf("Clearing twice must not fail: %v", err)
	}
}

func TestSnapshotCounts(t *testing.T) {
	valid, invalid := sampleSnapshot().Counts()
	if valid != 2 || invalid != 1 {
		t.Errorf("Expected 2 valid and 1 invalid, got %d and %d", valid, invalid)
	}
}
