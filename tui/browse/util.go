package browse

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hooktools/core/state"
	"github.com/hooktools/core/tui/theme"
)

// kindAbbreviation returns a single-character string for a file kind.
func kindAbbreviation(kind string) string {
	switch kind {
	case "config":
		return "c"
	case "manifest":
		return "m"
	default:
		return "?"
	}
}

// statusIcon returns the styled validity indicator for a file.
func statusIcon(f *state.FileState) string {
	t := theme.DefaultTheme
	switch {
	case !f.Valid:
		return t.Error.Render(theme.IconError)
	case len(f.Warnings) > 0:
		return t.Warning.Render(theme.IconWarning)
	default:
		return t.Success.Render(theme.IconSuccess)
	}
}

// shortenPath replaces the home directory prefix with a tilde (~).
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path // Fallback to original path on error
	}

	if strings.HasPrefix(path, home) {
		return filepath.Join("~", strings.TrimPrefix(path, home))
	}

	return path
}
