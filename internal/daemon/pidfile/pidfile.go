// Package pidfile tracks the daemon's pid on disk so other commands
// can find it or refuse to start a second instance.
package pidfile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/hooktools/core/errors"
	"github.com/hooktools/core/pkg/process"
)

// Acquire claims the pid file for this process. A live pid already in
// the file wins; a dead or unreadable one counts as stale and is
// replaced. The write goes through a rename so a crash cannot leave a
// half-written file.
func Acquire(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WriteFailed(path, err)
	}
	if pid, err := Read(path); err == nil && process.IsProcessAlive(pid) {
		return errors.DaemonAlreadyRunning(pid)
	}
	if err := renameio.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

// Release removes the pid file.
func Release(path string) error {
	return os.Remove(path)
}

// Read parses the pid stored in the file.
func Read(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

// IsRunning reports whether the process named by the pid file is
// alive. A missing pid file means no daemon, not an error.
func IsRunning(path string) (bool, int, error) {
	pid, err := Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return process.IsProcessAlive(pid), pid, nil
}
