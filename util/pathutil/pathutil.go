// Package pathutil holds the path helpers shared by the CLI and the
// daemon: user-input expansion and canonical forms for map keys.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Expand turns user input into an absolute path: a leading ~/ becomes
// the home directory and environment variables are substituted.
func Expand(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// NormalizeForLookup returns the canonical spelling of a path for use
// as a map key or in comparisons: absolute, symlinks resolved, and
// lowercased on case-insensitive filesystems. Paths that do not exist
// yet stay unresolved but absolute.
func NormalizeForLookup(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		resolved = abs
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		resolved = strings.ToLower(resolved)
	}
	return resolved, nil
}
