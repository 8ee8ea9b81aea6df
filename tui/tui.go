// Package tui hosts the interactive browse application and its shared
// terminal setup.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI forces the truecolor profile when CLICOLOR_FORCE=1 or
// COLORTERM=truecolor is set, so styles survive CI and piped runs.
// With neither variable set it leaves the detected profile alone.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
