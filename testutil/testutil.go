// Package testutil provides shared test helpers: writers for the two
// hook file formats and a quiet logger for components that require one.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// WriteFile writes contents to path, creating parent directories as
// needed, and returns the path.
func WriteFile(t *testing.T, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// WriteConfig writes contents as dir/.pre-commit-config.yaml.
func WriteConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, ".pre-commit-config.yaml"), contents)
}

// WriteManifest writes contents as dir/.pre-commit-hooks.yaml.
func WriteManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, ".pre-commit-hooks.yaml"), contents)
}

// QuietLogger returns a logger that only surfaces warnings, for tests
// that need a logger without its routine output.
func QuietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
