package daemon

import (
	"net"
	"os"
	"time"

	"github.com/hooktools/core/pkg/paths"
	"github.com/hooktools/core/settings"
)

// New returns the best available Client: the running daemon when its
// socket answers, otherwise an in-process fallback. Callers get the
// same API either way and never need to know which one they hold.
func New() Client {
	if client := dialDaemon(); client != nil {
		return client
	}

	s, err := settings.LoadDefault()
	if err != nil {
		s = settings.Default()
	}
	return NewLocalClient(s.Watch.Roots, s.Ignore)
}

// dialDaemon probes the daemon socket. The short timeout keeps command
// startup snappy when only a stale socket file is left behind.
func dialDaemon() Client {
	socketPath := paths.SocketPath()
	if _, err := os.Stat(socketPath); err != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", socketPath, 100*time.Millisecond)
	if err != nil {
		return nil
	}
	conn.Close()

	client, err := NewRemoteClient(socketPath)
	if err != nil {
		return nil
	}
	return client
}
