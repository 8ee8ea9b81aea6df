// Package process holds the liveness probe the daemon pid file needs.
package process

import (
	"os"
	"syscall"
)

// IsProcessAlive reports whether pid names a running process. Signal 0
// probes for existence without delivering anything; a permission error
// still means the process exists, it just belongs to another user.
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
