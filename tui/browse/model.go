package browse

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hooktools/core/pkg/daemon"
	"github.com/hooktools/core/state"
)

// Model represents the state of the browse TUI.
type Model struct {
	client daemon.Client

	configs   map[string]*state.FileState // Keyed by path
	manifests map[string]*state.FileState // Keyed by path
	viewFiles []*state.FileState          // Filtered, sorted list for display

	streaming bool // True while receiving live daemon updates

	keys        KeyMap
	help        help.Model
	filterInput textinput.Model

	cursor       int
	scrollOffset int
	width        int
	height       int
	showDetails  bool
	lastKeyWasG  bool // Track if last key press was 'g' for 'gg' combo
	err          error
}

// Init kicks off the initial state load and the live stream subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadState(), m.startStream())
}
