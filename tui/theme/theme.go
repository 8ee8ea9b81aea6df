// Package theme provides the color palettes and lipgloss styles shared by
// hookcfg's CLI output and the browse TUI. The active palette is chosen by
// the HOOKCFG_THEME environment variable, then the settings file.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hooktools/core/settings"
)

const defaultThemeName = "kanagawa"

// shade is a pair of hex values resolved against the terminal background
// at render time.
type shade struct {
	light string
	dark  string
}

func (s shade) color() lipgloss.TerminalColor {
	if s.light == s.dark {
		return lipgloss.Color(s.dark)
	}
	return lipgloss.AdaptiveColor{Light: s.light, Dark: s.dark}
}

// ansi names a slot in the terminal's own 256-color table instead of a
// hex value, so the user's scheme wins on both backgrounds.
func ansi(code string) shade { return shade{light: code, dark: code} }

// palette holds the shades a theme draws from. Only slots that some
// style or command actually renders with are carried.
type palette struct {
	red    shade
	orange shade
	yellow shade
	green  shade
	cyan   shade
	blue   shade
	violet shade

	muted      shade
	border     shade
	background shade
}

var palettes = map[string]palette{
	// Dragon shades on dark terminals, wave-derived shades on light.
	"kanagawa": {
		red:        shade{"#C34043", "#FF5D62"},
		orange:     shade{"#CC6B4E", "#FFA066"},
		yellow:     shade{"#A68A64", "#FF9E3B"},
		green:      shade{"#4E7C5A", "#98BB6C"},
		cyan:       shade{"#5B8BBE", "#7E9CD8"},
		blue:       shade{"#4F7CAC", "#7FB4CA"},
		violet:     shade{"#674D7A", "#957FB8"},
		muted:      shade{"#6C7086", "#727169"},
		border:     shade{"#B5BDC5", "#363646"},
		background: shade{"#EFF1F8", "#181820"},
	},
	"gruvbox": {
		red:        shade{"#CC241D", "#FB4934"},
		orange:     shade{"#D65D0E", "#FE8019"},
		yellow:     shade{"#D79921", "#FABD2F"},
		green:      shade{"#98971A", "#B8BB26"},
		cyan:       shade{"#458588", "#83A598"},
		blue:       shade{"#076678", "#458588"},
		violet:     shade{"#8F3F71", "#B16286"},
		muted:      shade{"#928374", "#BDAE93"},
		border:     shade{"#D5C4A1", "#504945"},
		background: shade{"#F9F5D7", "#1D2021"},
	},
	// Plain ANSI for terminals where the user's scheme should decide.
	"terminal": {
		red:        ansi("1"),
		orange:     ansi("208"),
		yellow:     ansi("3"),
		green:      ansi("2"),
		cyan:       ansi("6"),
		blue:       ansi("4"),
		violet:     ansi("5"),
		muted:      ansi("8"),
		border:     ansi("8"),
		background: ansi("0"),
	},
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
}

// Colors is the resolved palette of the active theme. Most output goes
// through the styles on Theme; commands composing one-off styles pick
// raw colors from here.
type Colors struct {
	Red    lipgloss.TerminalColor
	Orange lipgloss.TerminalColor
	Yellow lipgloss.TerminalColor
	Green  lipgloss.TerminalColor
	Cyan   lipgloss.TerminalColor
	Blue   lipgloss.TerminalColor
	Violet lipgloss.TerminalColor

	Muted                lipgloss.TerminalColor
	Border               lipgloss.TerminalColor
	VerySubtleBackground lipgloss.TerminalColor
}

func (p palette) resolve() Colors {
	return Colors{
		Red:                  p.red.color(),
		Orange:               p.orange.color(),
		Yellow:               p.yellow.color(),
		Green:                p.green.color(),
		Cyan:                 p.cyan.color(),
		Blue:                 p.blue.color(),
		Violet:               p.violet.color(),
		Muted:                p.muted.color(),
		Border:               p.border.color(),
		VerySubtleBackground: p.background.color(),
	}
}

// Theme holds the pre-built styles for hookcfg output.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Muted  lipgloss.Style
	Italic lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	DetailsBox  lipgloss.Style

	Placeholder lipgloss.Style
	Highlight   lipgloss.Style
	Accent      lipgloss.Style

	// Repository name styles: weight carries the hierarchy so the
	// colors stay free for status columns.
	RepoRemote lipgloss.Style // fetched from a remote repository
	RepoLocal  lipgloss.Style // defined inline in the config
	RepoMeta   lipgloss.Style // pre-commit's built-in meta hooks
}

// DefaultTheme is built once at startup from the configured palette.
var DefaultTheme = newTheme(paletteFor(themeName()))

func newTheme(p palette) *Theme {
	c := p.resolve()
	t := &Theme{Colors: c}

	t.Header = lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1)
	t.Title = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)

	t.Success = lipgloss.NewStyle().Foreground(c.Green).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(c.Red).Bold(true)
	t.Warning = lipgloss.NewStyle().Foreground(c.Yellow).Bold(true)
	t.Info = lipgloss.NewStyle().Foreground(c.Cyan).Bold(true)

	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Muted = lipgloss.NewStyle().Faint(true)
	t.Italic = lipgloss.NewStyle().Italic(true)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(c.Border)
	t.TableRow = lipgloss.NewStyle()
	t.DetailsBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.Violet).
		Padding(0, 1)

	t.Placeholder = lipgloss.NewStyle().Foreground(c.Muted).Italic(true)
	t.Highlight = lipgloss.NewStyle().Foreground(c.Orange).Bold(true)
	t.Accent = lipgloss.NewStyle().Foreground(c.Violet).Bold(true)

	t.RepoRemote = lipgloss.NewStyle().Bold(true)
	t.RepoLocal = lipgloss.NewStyle()
	t.RepoMeta = lipgloss.NewStyle().Faint(true)

	return t
}

func paletteFor(name string) palette {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if p, ok := palettes[key]; ok {
		return p
	}
	return palettes[defaultThemeName]
}

func normalizeThemeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "-")
	return strings.ReplaceAll(n, "_", "-")
}

// themeName resolves the configured palette name. The environment wins
// over the settings file so one-off runs can override it.
func themeName() string {
	if name := normalizeThemeName(os.Getenv("HOOKCFG_THEME")); name != "" {
		return name
	}
	if s, err := settings.LoadDefault(); err == nil && s != nil {
		if name := normalizeThemeName(s.Theme); name != "" {
			return name
		}
	}
	return defaultThemeName
}
