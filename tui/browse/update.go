package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/state"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateLoadedMsg:
		m.err = nil
		m.configs = copyMap(msg.snapshot.Configs)
		m.manifests = copyMap(msg.snapshot.Manifests)
		m.rebuildView()
		return m, nil

	case stateErrMsg:
		m.err = msg.err
		return m, nil

	case streamStartedMsg:
		m.streaming = true
		return m, waitForUpdate(msg.ch)

	case streamUpdateMsg:
		m.applyStreamUpdate(msg.update)
		m.rebuildView()
		return m, waitForUpdate(msg.ch)

	case streamClosedMsg:
		m.streaming = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Full help overlay swallows the next keypress
	if m.help.ShowAll {
		m.help.ShowAll = false
		return m, nil
	}

	// Details panel: any dismiss key returns to the list
	if m.showDetails {
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Details):
			m.showDetails = false
		}
		return m, nil
	}

	// Handle filter input when it's focused
	if m.filterInput.Focused() {
		switch {
		case key.Matches(msg, m.keys.Quit): // Esc or Ctrl+C
			m.filterInput.Blur()
			m.rebuildView()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.viewFiles)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Details):
			m.filterInput.Blur()
			if len(m.viewFiles) > 0 {
				m.showDetails = true
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.rebuildView()
			m.cursor = 0
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Filter):
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Details):
		if len(m.viewFiles) > 0 {
			m.showDetails = true
		}

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadState()

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Top):
		// Handle 'gg' - go to top
		if m.lastKeyWasG {
			m.cursor = 0
			m.ensureCursorVisible()
			m.lastKeyWasG = false
		} else {
			m.lastKeyWasG = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if len(m.viewFiles) > 0 {
			m.cursor = len(m.viewFiles) - 1
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.viewFiles)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.height / 2
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.height / 2
		if m.cursor >= len(m.viewFiles) {
			m.cursor = len(m.viewFiles) - 1
		}
		m.ensureCursorVisible()
	}

	m.lastKeyWasG = false
	return m, nil
}

// applyStreamUpdate folds one live update into the file maps.
func (m *Model) applyStreamUpdate(u daemon.StateUpdate) {
	switch u.UpdateType {
	case "initial":
		m.configs = fromList(u.Configs)
		m.manifests = fromList(u.Manifests)
	case "configs":
		m.configs = fromList(u.Configs)
	case "manifests":
		m.manifests = fromList(u.Manifests)
	case "file":
		if u.File == nil {
			return
		}
		if u.File.Kind == "manifest" {
			m.manifests[u.File.Path] = u.File
		} else {
			m.configs[u.File.Path] = u.File
		}
	case "file_removed":
		delete(m.configs, u.RemovedPath)
		delete(m.manifests, u.RemovedPath)
	}
}

// rebuildView recomputes the display list from the file maps and filter.
func (m *Model) rebuildView() {
	files := append(state.SortedFiles(m.configs), state.SortedFiles(m.manifests)...)

	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if filter != "" {
		filtered := files[:0:0]
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.Path), filter) {
				filtered = append(filtered, f)
			}
		}
		files = filtered
	}

	m.viewFiles = files
	if m.cursor >= len(m.viewFiles) {
		m.cursor = len(m.viewFiles) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ensureCursorVisible adjusts the scroll offset to ensure the cursor is visible
func (m *Model) ensureCursorVisible() {
	const headerHeight = 3
	const footerHeight = 3
	const topMargin = 1
	mainAreaHeight := m.height - headerHeight - footerHeight - topMargin
	availableHeight := mainAreaHeight - 2 - 2 - 2 // borders, padding, header row + separator

	if availableHeight < 1 {
		availableHeight = 1
	}

	// If cursor is above the viewport, scroll up
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}

	// If cursor is below the viewport, scroll down
	if m.cursor >= m.scrollOffset+availableHeight {
		m.scrollOffset = m.cursor - availableHeight + 1
	}
}

func fromList(files []*state.FileState) map[string]*state.FileState {
	result := make(map[string]*state.FileState, len(files))
	for _, f := range files {
		result[f.Path] = f
	}
	return result
}

func copyMap(files map[string]*state.FileState) map[string]*state.FileState {
	result := make(map[string]*state.FileState, len(files))
	for path, f := range files {
		result[path] = f
	}
	return result
}
