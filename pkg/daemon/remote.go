package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hooktools/core/state"
)

// Requests carry a placeholder host; the transport dials the unix
// socket and ignores it.
const baseURL = "http://unix"

// RemoteClient implements Client against the daemon's HTTP API on the
// unix socket, returning cached validation results without rescanning.
type RemoteClient struct {
	httpClient *http.Client
	socketPath string
}

var _ Client = (*RemoteClient)(nil)

// NewRemoteClient returns a client for the daemon socket.
func NewRemoteClient(socketPath string) (*RemoteClient, error) {
	return &RemoteClient{
		httpClient: unixHTTPClient(socketPath, 10*time.Second),
		socketPath: socketPath,
	}, nil
}

// unixHTTPClient builds an HTTP client whose transport dials the unix
// socket. A zero timeout means none, which streaming needs.
func unixHTTPClient(socketPath string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socketPath)
			},
			MaxIdleConns:    10,
			IdleConnTimeout: 90 * time.Second,
		},
	}
}

// GetState returns the daemon's complete validation snapshot.
func (c *RemoteClient) GetState(ctx context.Context) (*state.Snapshot, error) {
	var snap state.Snapshot
	if err := c.getJSON(ctx, "/api/state", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetConfigs returns the state of every known configuration file.
func (c *RemoteClient) GetConfigs(ctx context.Context) ([]*state.FileState, error) {
	var files []*state.FileState
	if err := c.getJSON(ctx, "/api/configs", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// GetManifests returns the state of every known manifest file.
func (c *RemoteClient) GetManifests(ctx context.Context) ([]*state.FileState, error) {
	var files []*state.FileState
	if err := c.getJSON(ctx, "/api/manifests", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// RunningConfig is the effective configuration of a running daemon.
// The field layout matches the server's /api/config payload.
type RunningConfig struct {
	Roots        []string      `json:"roots"`
	ScanInterval time.Duration `json:"scan_interval"`
	Debounce     time.Duration `json:"debounce"`
	StartedAt    time.Time     `json:"started_at"`
}

// GetRunningConfig returns the roots and intervals the daemon runs with.
func (c *RemoteClient) GetRunningConfig(ctx context.Context) (*RunningConfig, error) {
	var cfg RunningConfig
	if err := c.getJSON(ctx, "/api/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *RemoteClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode daemon response: %w", err)
	}
	return nil
}

// IsRunning reports whether the daemon answers its health endpoint.
func (c *RemoteClient) IsRunning() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// StreamState subscribes to live validation updates over SSE. The
// channel closes when ctx ends or the connection drops.
func (c *RemoteClient) StreamState(ctx context.Context) (<-chan StateUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/stream", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream request: %w", err)
	}

	// Streaming must outlive any fixed request timeout.
	streamClient := unixHTTPClient(c.socketPath, 0)
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	ch := make(chan StateUpdate, 10)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		defer streamClient.CloseIdleConnections()
		readSSE(ctx, resp.Body, ch)
	}()
	return ch, nil
}

// readSSE forwards each data line of an SSE body to ch. Comment lines
// and malformed payloads are skipped.
func readSSE(ctx context.Context, body io.Reader, ch chan<- StateUpdate) {
	scanner := bufio.NewScanner(body)
	// Full-scan updates can exceed the default 64KB line limit
	scanner.Buffer(make([]byte, 0, 1024*1024), 8*1024*1024)
	for scanner.Scan() {
		payload, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}
		var update StateUpdate
		if err := json.Unmarshal([]byte(payload), &update); err != nil {
			continue
		}
		select {
		case ch <- update:
		case <-ctx.Done():
			return
		}
	}
}

// StreamStateWS subscribes to the same update feed over the websocket
// endpoint, for consumers that want framed messages instead of an SSE
// byte stream.
func (c *RemoteClient) StreamStateWS(ctx context.Context) (<-chan StateUpdate, error) {
	dialer := websocket.Dialer{
		NetDialContext: func(dialCtx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(dialCtx, "unix", c.socketPath)
		},
		HandshakeTimeout: 5 * time.Second,
	}
	conn, resp, err := dialer.DialContext(ctx, "ws://unix/api/ws", nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("failed to attach websocket: %w", err)
	}

	// Closing the connection on cancel unblocks the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	ch := make(chan StateUpdate, 10)
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			var update StateUpdate
			if err := conn.ReadJSON(&update); err != nil {
				return
			}
			select {
			case ch <- update:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// Close releases the client's idle connections.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
