// Package server exposes the daemon's state over a unix socket: plain
// JSON endpoints for snapshots, and SSE or websocket streams for live
// updates.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/hooktools/core/internal/daemon/engine"
	"github.com/hooktools/core/internal/daemon/store"
	"github.com/hooktools/core/state"
)

// RunningConfig echoes the parameters the daemon was started with, via
// /api/config, so clients can verify what is active.
type RunningConfig struct {
	Roots        []string      `json:"roots"`
	ScanInterval time.Duration `json:"scan_interval"`
	Debounce     time.Duration `json:"debounce"`
	StartedAt    time.Time     `json:"started_at"`
}

// Server serves the daemon API over a unix socket.
type Server struct {
	logger  *logrus.Entry
	engine  *engine.Engine
	running *RunningConfig
	httpSrv *http.Server
}

// New wires a server around an engine.
func New(logger *logrus.Entry, eng *engine.Engine, cfg *RunningConfig) *Server {
	return &Server{logger: logger, engine: eng, running: cfg}
}

// ListenAndServe serves the API on the unix socket until Shutdown or
// failure. A socket file left behind by a dead daemon is replaced.
func (s *Server) ListenAndServe(socketPath string) error {
	listener, err := bindSocket(socketPath)
	if err != nil {
		return err
	}
	s.httpSrv = &http.Server{Handler: s.routes()}
	s.logger.WithField("socket", socketPath).Info("Daemon listening")
	return s.httpSrv.Serve(listener)
}

// Shutdown stops accepting connections and drains the running ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// bindSocket prepares the unix socket: parent directory, stale file
// cleanup, and owner-only permissions once bound.
func bindSocket(path string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create socket directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("restrict socket permissions: %w", err)
	}
	return listener, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/configs", s.handleConfigs)
	mux.HandleFunc("/api/manifests", s.handleManifests)
	mux.HandleFunc("/api/config", s.handleRunningConfig)
	mux.HandleFunc("/api/stream", s.handleSSE)
	mux.HandleFunc("/api/ws", s.handleWebsocket)
	return mux
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Store().Snapshot(os.Getpid()))
}

func (s *Server) handleConfigs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Store().GetConfigs())
}

func (s *Server) handleManifests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Store().GetManifests())
}

func (s *Server) handleRunningConfig(w http.ResponseWriter, r *http.Request) {
	if s.running == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, s.running)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleSSE streams updates as server-sent events.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Opening comment line confirms the connection before any data.
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()
	s.logger.Debug("SSE client connected")

	s.stream(r.Context(), nil, func(u *apiStateUpdate) error {
		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	s.logger.Debug("SSE client disconnected")
}

var upgrader = websocket.Upgrader{
	// The socket is private to the user, no origin to check
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket streams the same updates as framed JSON messages, for
// consumers that prefer not to parse an SSE byte stream.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()
	s.logger.Debug("Websocket client connected")

	// Reads only serve to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.stream(r.Context(), closed, func(u *apiStateUpdate) error {
		return conn.WriteJSON(u)
	})
	s.logger.Debug("Websocket client disconnected")
}

// stream sends the current state and then every store update through
// send, until the request ends, closed is closed, or send fails. A nil
// closed channel never fires.
func (s *Server) stream(ctx context.Context, closed <-chan struct{}, send func(*apiStateUpdate) error) {
	ch := s.engine.Store().Subscribe()
	defer s.engine.Store().Unsubscribe(ch)

	if initial := s.initialUpdate(); initial != nil {
		if err := send(initial); err != nil {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			return
		case u := <-ch:
			apiUpdate := toAPIUpdate(u)
			if apiUpdate == nil {
				continue
			}
			if err := send(apiUpdate); err != nil {
				return
			}
		}
	}
}

// initialUpdate builds the first message for a new stream subscriber,
// so clients have data before the next change comes in.
func (s *Server) initialUpdate() *apiStateUpdate {
	current := s.engine.Store().Get()
	if len(current.Configs) == 0 && len(current.Manifests) == 0 {
		return nil
	}
	return &apiStateUpdate{
		Configs:    state.SortedFiles(current.Configs),
		Manifests:  state.SortedFiles(current.Manifests),
		UpdateType: "initial",
	}
}

// apiStateUpdate matches the daemon.StateUpdate type for streaming.
type apiStateUpdate struct {
	Configs      []*state.FileState `json:"configs,omitempty"`
	Manifests    []*state.FileState `json:"manifests,omitempty"`
	File         *state.FileState   `json:"file,omitempty"`
	RemovedPath  string             `json:"removed_path,omitempty"`
	UpdateType   string             `json:"update_type"`
	Source       string             `json:"source,omitempty"`
	Scanned      int                `json:"scanned,omitempty"`
	SettingsFile string             `json:"settings_file,omitempty"`
}

// toAPIUpdate converts an internal store update to the wire format.
// Updates with unexpected payloads map to nil and are not streamed.
func toAPIUpdate(u store.Update) *apiStateUpdate {
	out := &apiStateUpdate{Source: u.Source, Scanned: u.Scanned}
	switch u.Type {
	case store.UpdateConfigs:
		files, ok := u.Payload.(map[string]*state.FileState)
		if !ok {
			return nil
		}
		out.UpdateType = "configs"
		out.Configs = state.SortedFiles(files)
	case store.UpdateManifests:
		files, ok := u.Payload.(map[string]*state.FileState)
		if !ok {
			return nil
		}
		out.UpdateType = "manifests"
		out.Manifests = state.SortedFiles(files)
	case store.UpdateFile:
		f, ok := u.Payload.(*state.FileState)
		if !ok {
			return nil
		}
		out.UpdateType = "file"
		out.File = f
	case store.UpdateFileRemoved:
		path, ok := u.Payload.(string)
		if !ok {
			return nil
		}
		out.UpdateType = "file_removed"
		out.RemovedPath = path
	case store.UpdateSettingsReload:
		out.UpdateType = "settings_reload"
		if file, ok := u.Payload.(string); ok {
			out.SettingsFile = file
		}
	default:
		return nil
	}
	return out
}
