package collector

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/state"
	"github.com/hooktools/core/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `repos:
  - repo: local
    hooks:
      - id: go-vet
        name: go vet
        entry: go vet ./...
        language: system
`

const sampleManifest = `- id: go-vet
  name: go vet
  entry: go vet ./...
  language: system
`

func TestScanCollectorEmitsBothKinds(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteConfig(t, dir, sampleConfig)
	testutil.WriteManifest(t, filepath.Join(dir, "hooks"), sampleManifest)

	c, err := NewScanCollector([]string{dir}, nil, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "scan", c.Name())

	st := store.New([]string{dir})
	updates := make(chan store.Update, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, st, updates)

	received := make(map[store.UpdateType]store.Update)
	deadline := time.After(5 * time.Second)
	for len(received) < 2 {
		select {
		case u := <-updates:
			received[u.Type] = u
		case <-deadline:
			t.Fatalf("timed out; received %d update(s)", len(received))
		}
	}

	configUpdate := received[store.UpdateConfigs]
	require.Equal(t, 1, configUpdate.Scanned)
	configs, ok := configUpdate.Payload.(map[string]*state.FileState)
	require.True(t, ok)
	for _, fs := range configs {
		assert.True(t, fs.Valid)
		assert.Equal(t, 1, fs.Repos)
	}

	manifestUpdate := received[store.UpdateManifests]
	require.Equal(t, 1, manifestUpdate.Scanned)
	manifests, ok := manifestUpdate.Payload.(map[string]*state.FileState)
	require.True(t, ok)
	for _, fs := range manifests {
		assert.True(t, fs.Valid)
		assert.Equal(t, 1, fs.Hooks)
	}
}

func TestWatchCollectorRevalidatesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pre-commit-config.yaml")

	c := NewWatchCollector([]string{dir}, 10*time.Millisecond)
	assert.Equal(t, "watch", c.Name())

	st := store.New([]string{dir})
	updates := make(chan store.Update, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, st, updates)

	// Give the watcher a moment to register the root
	time.Sleep(100 * time.Millisecond)
	testutil.WriteFile(t, path, sampleConfig)

	select {
	case u := <-updates:
		require.Equal(t, store.UpdateFile, u.Type)
		fs, ok := u.Payload.(*state.FileState)
		require.True(t, ok)
		assert.Equal(t, path, fs.Path)
		assert.True(t, fs.Valid)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch update")
	}
}
