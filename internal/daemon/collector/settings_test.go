package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCollectorBroadcastsReload(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOOKCFG_HOME", home)

	configDir := filepath.Join(home, "config", "hookcfg")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	c := NewSettingsCollector(10 * time.Millisecond)
	assert.Equal(t, "settings", c.Name())

	st := store.New(nil)
	sub := st.Subscribe()
	defer st.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, st, make(chan store.Update, 1))

	// Give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)
	testutil.WriteFile(t, filepath.Join(configDir, "config.yaml"), "theme: gruvbox\n")

	select {
	case u := <-sub:
		require.Equal(t, store.UpdateSettingsReload, u.Type)
		assert.Equal(t, "settings", u.Source)
		assert.Equal(t, filepath.Join(configDir, "config.yaml"), u.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings reload broadcast")
	}
}

func TestSettingsCollectorIgnoresUnrelatedFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOOKCFG_HOME", home)

	configDir := filepath.Join(home, "config", "hookcfg")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	c := NewSettingsCollector(10 * time.Millisecond)

	st := store.New(nil)
	sub := st.Subscribe()
	defer st.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, st, make(chan store.Update, 1))

	time.Sleep(100 * time.Millisecond)
	testutil.WriteFile(t, filepath.Join(configDir, "notes.txt"), "not settings\n")

	select {
	case u := <-sub:
		t.Fatalf("unexpected broadcast for unrelated file: %+v", u)
	case <-time.After(300 * time.Millisecond):
	}
}
