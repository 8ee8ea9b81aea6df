// Package paths resolves the XDG directories hookcfg writes to.
//
// HOOKCFG_HOME collapses everything under one portable root; otherwise
// the XDG_*_HOME variables apply, then the usual platform defaults
// under the home directory.
package paths

import (
	"os"
	"path/filepath"
)

const appDir = "hookcfg"

// baseDir resolves one XDG base directory. Under HOOKCFG_HOME the sub
// name keeps the four trees apart inside the portable root.
func baseDir(sub, xdgVar string, fallback ...string) string {
	if home := os.Getenv("HOOKCFG_HOME"); home != "" {
		return filepath.Join(home, sub)
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func appPath(base string) string {
	if base == "" {
		return ""
	}
	return filepath.Join(base, appDir)
}

// ConfigDir returns the directory holding the tool's settings file.
func ConfigDir() string {
	return appPath(baseDir("config", "XDG_CONFIG_HOME", ".config"))
}

// DataDir returns the tool's data directory.
func DataDir() string {
	return appPath(baseDir("data", "XDG_DATA_HOME", ".local", "share"))
}

// StateDir returns the tool's state directory. Logs and the persisted
// validation snapshot live here.
func StateDir() string {
	return appPath(baseDir("state", "XDG_STATE_HOME", ".local", "state"))
}

// CacheDir returns the tool's cache directory for regenerable data.
func CacheDir() string {
	return appPath(baseDir("cache", "XDG_CACHE_HOME", ".cache"))
}

// LogsDir returns the directory holding the tool's log files.
func LogsDir() string {
	if state := StateDir(); state != "" {
		return filepath.Join(state, "logs")
	}
	return ""
}

// RuntimeDir returns the directory for the daemon socket.
// XDG_RUNTIME_DIR is preferred; systems without it (macOS) fall back to
// the state directory.
func RuntimeDir() string {
	if home := os.Getenv("HOOKCFG_HOME"); home != "" {
		return filepath.Join(home, "run")
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	return StateDir()
}

// SocketPath returns the watch daemon's unix socket path.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "hookcfgd.sock")
}

// PidFilePath returns the watch daemon's pid file path.
func PidFilePath() string {
	return filepath.Join(StateDir(), "hookcfgd.pid")
}

// SnapshotPath returns the path of the persisted validation snapshot.
func SnapshotPath() string {
	return filepath.Join(StateDir(), "snapshot.json")
}

// EnsureDirs creates every hookcfg directory that does not exist yet.
func EnsureDirs() error {
	for _, dir := range []string{
		ConfigDir(),
		DataDir(),
		StateDir(),
		CacheDir(),
		LogsDir(),
		RuntimeDir(),
	} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
