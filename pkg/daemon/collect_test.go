package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `repos:
  - repo: https://github.com/psf/black
    rev: 24.3.0
    hooks:
      - id: black
  - repo: local
    hooks:
      - id: go-vet
        name: go vet
        entry: go vet ./...
        language: system
`

const invalidConfig = `repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
        files: "("
`

const validManifest = `- id: go-vet
  name: go vet
  entry: go vet ./...
  language: system
- id: go-fmt
  name: go fmt
  entry: gofmt -l
  language: system
`

func TestValidateFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteConfig(t, dir, validConfig)

	fs := ValidateFile(path, discover.KindConfig)
	require.NotNil(t, fs)
	assert.Equal(t, path, fs.Path)
	assert.Equal(t, string(discover.KindConfig), fs.Kind)
	assert.True(t, fs.Valid)
	assert.Empty(t, fs.Errors)
	assert.Equal(t, 2, fs.Repos)
	assert.Equal(t, 2, fs.Hooks)
	assert.False(t, fs.ValidatedAt.IsZero())
	assert.False(t, fs.ModifiedAt.IsZero())
}

func TestValidateFileInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteConfig(t, dir, invalidConfig)

	fs := ValidateFile(path, discover.KindConfig)
	require.NotNil(t, fs)
	assert.False(t, fs.Valid)
	assert.NotEmpty(t, fs.Errors)
}

func TestValidateFileManifest(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteManifest(t, dir, validManifest)

	fs := ValidateFile(path, discover.KindManifest)
	require.NotNil(t, fs)
	assert.Equal(t, string(discover.KindManifest), fs.Kind)
	assert.True(t, fs.Valid)
	assert.Equal(t, 2, fs.Hooks)
	assert.Zero(t, fs.Repos)
}

func TestValidateFileMissing(t *testing.T) {
	fs := ValidateFile(filepath.Join(t.TempDir(), ".pre-commit-config.yaml"), discover.KindConfig)
	require.NotNil(t, fs)
	assert.False(t, fs.Valid)
	assert.NotEmpty(t, fs.Errors)
}

func TestCollectOnceSplitsKinds(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteConfig(t, dir, validConfig)
	testutil.WriteManifest(t, filepath.Join(dir, "hooks"), validManifest)

	service, err := discover.NewService(testutil.QuietLogger(), nil)
	require.NoError(t, err)

	configs, manifests, err := CollectOnce(service, []string{dir})
	require.NoError(t, err)
	assert.Len(t, configs, 1)
	assert.Len(t, manifests, 1)

	for path, fs := range configs {
		assert.Equal(t, path, fs.Path)
		assert.True(t, fs.Valid)
	}
}

func TestLocalClientGetState(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteConfig(t, dir, validConfig)

	client := NewLocalClient([]string{dir}, nil)
	defer client.Close()

	snap, err := client.GetState(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Configs, 1)
	assert.Empty(t, snap.Manifests)
	assert.Equal(t, []string{dir}, snap.Roots)

	configs, err := client.GetConfigs(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.True(t, configs[0].Valid)
}

func TestLocalClientStreamUnavailable(t *testing.T) {
	client := NewLocalClient([]string{t.TempDir()}, nil)
	defer client.Close()

	_, err := client.StreamState(context.Background())
	assert.Error(t, err)
	assert.False(t, client.IsRunning())
}
