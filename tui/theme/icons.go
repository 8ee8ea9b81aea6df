package theme

import (
	"os"

	"github.com/hooktools/core/settings"
)

// iconSet covers the glyph slots hookcfg renders. The default set uses
// Nerd Font glyphs; HOOKCFG_ICONS=ascii or `icons: ascii` in the
// settings file swaps in plain characters.
type iconSet struct {
	config   string
	manifest string
	success  string
	fail     string
	warning  string
	running  string
	pending  string
	selected string
	filter   string
}

var nerdIcons = iconSet{
	config:   "", // seti-config
	manifest: "󰈙", // md-file_document
	success:  "󰄬", // md-check
	fail:     "", // cod-error
	warning:  "", // fa-warning
	running:  "", // fa-refresh
	pending:  "󰦖", // md-progress_clock
	selected: "󰱒", // md-checkbox_outline
	filter:   "󱣬", // md-filter_check
}

var asciiIcons = iconSet{
	config:   "◆",
	manifest: "▣",
	success:  "✓",
	fail:     "✗",
	warning:  "⚠",
	running:  "◐",
	pending:  "…",
	selected: "▶",
	filter:   "⊲",
}

// Icon slots referenced across the CLI and TUI, populated at init from
// the active set.
var (
	IconConfig   string
	IconManifest string
	IconSuccess  string
	IconError    string
	IconWarning  string
	IconRunning  string
	IconPending  string
	IconSelect   string
	IconFilter   string
)

func init() {
	set := nerdIcons
	if asciiPreferred() {
		set = asciiIcons
	}
	IconConfig = set.config
	IconManifest = set.manifest
	IconSuccess = set.success
	IconError = set.fail
	IconWarning = set.warning
	IconRunning = set.running
	IconPending = set.pending
	IconSelect = set.selected
	IconFilter = set.filter
}

func asciiPreferred() bool {
	if os.Getenv("HOOKCFG_ICONS") == "ascii" {
		return true
	}
	s, err := settings.LoadDefault()
	return err == nil && s != nil && s.Icons == "ascii"
}
