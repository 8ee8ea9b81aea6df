// Package browse implements the interactive TUI for exploring discovered
// pre-commit files and their validation state. When the watch daemon is
// running the view updates live as files change on disk.
package browse

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/state"
)

// New creates a new model for the browse TUI backed by the given client.
// A non-empty initial filter narrows the file list from the start.
func New(client daemon.Client, initialFilter string) *Model {
	filterInput := textinput.New()
	filterInput.Placeholder = "filter by path"
	filterInput.Prompt = "/ "
	filterInput.CharLimit = 120
	if initialFilter != "" {
		filterInput.SetValue(initialFilter)
	}

	return &Model{
		client:      client,
		configs:     make(map[string]*state.FileState),
		manifests:   make(map[string]*state.FileState),
		keys:        DefaultKeyMap,
		help:        help.New(),
		filterInput: filterInput,
	}
}

// Run launches the browse TUI and blocks until the user quits.
func Run(client daemon.Client, initialFilter string) error {
	p := tea.NewProgram(New(client, initialFilter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}

// loadState fetches the full validation snapshot from the client.
func (m *Model) loadState() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		snap, err := client.GetState(ctx)
		if err != nil {
			return stateErrMsg{err: err}
		}
		return stateLoadedMsg{snapshot: snap}
	}
}

// startStream subscribes to live updates when the daemon is available.
func (m *Model) startStream() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if !client.IsRunning() {
			return streamClosedMsg{}
		}
		ch, err := client.StreamState(context.Background())
		if err != nil {
			return streamClosedMsg{}
		}
		return streamStartedMsg{ch: ch}
	}
}

// waitForUpdate blocks on the stream channel and re-queues itself after
// every received update.
func waitForUpdate(ch <-chan daemon.StateUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return streamUpdateMsg{update: update, ch: ch}
	}
}
