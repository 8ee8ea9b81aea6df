package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hooktools/core/tui/theme"
)

// Help output wraps at a readable column even on wide terminals.
const (
	helpMaxWidth = 72
	helpMinWidth = 40
)

// SetStyledHelp replaces cobra's default help with the themed renderer.
// Subcommands inherit the help function, so calling this on the root
// command is enough.
func SetStyledHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		newHelpRenderer(cmd).render()
	})
}

type helpRenderer struct {
	cmd   *cobra.Command
	out   io.Writer
	t     *theme.Theme
	width int

	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
}

func newHelpRenderer(cmd *cobra.Command) *helpRenderer {
	t := theme.DefaultTheme
	return &helpRenderer{
		cmd:     cmd,
		out:     cmd.OutOrStdout(),
		t:       t,
		width:   helpWidth(),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Orange),
		heading: lipgloss.NewStyle().Italic(true).Foreground(t.Colors.Orange),
		name:    lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Blue),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
	}
}

// helpWidth reads the terminal width and clamps it to the readable range.
func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width >= helpMaxWidth {
		return helpMaxWidth
	}
	if width < helpMinWidth {
		return helpMinWidth
	}
	return width
}

func (r *helpRenderer) render() {
	r.printf(" %s\n", r.title.Render(strings.ToUpper(r.cmd.CommandPath())))

	body, examples := splitExamples(r.cmd.Long)
	if r.cmd.Short != "" {
		r.paragraph(r.t.Italic.Render(r.cmd.Short))
	}
	if body != "" && body != r.cmd.Short {
		r.printf("\n")
		r.paragraph(body)
	}

	r.usage()
	r.subcommands()
	r.flags()

	if examples == "" {
		examples = r.cmd.Example
	}
	if examples != "" {
		r.section("EXAMPLES")
		r.examples(examples)
	}

	if r.cmd.HasSubCommands() {
		r.printf("\n Use \"%s [command] --help\" for more information.\n", r.cmd.CommandPath())
	}
}

func (r *helpRenderer) usage() {
	if !r.cmd.Runnable() && !r.cmd.HasSubCommands() {
		return
	}
	r.section("USAGE")
	if r.cmd.Runnable() {
		r.printf(" %s\n", r.cmd.UseLine())
	}
	if r.cmd.HasSubCommands() {
		r.printf(" %s [command]\n", r.cmd.CommandPath())
	}
}

func (r *helpRenderer) subcommands() {
	if !r.cmd.HasAvailableSubCommands() {
		return
	}

	widest := 0
	for _, sub := range r.cmd.Commands() {
		if sub.IsAvailableCommand() && len(sub.Name()) > widest {
			widest = len(sub.Name())
		}
	}

	r.section("COMMANDS")
	for _, sub := range r.cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		pad := strings.Repeat(" ", widest-len(sub.Name()))
		r.printf(" %s%s  %s\n", r.name.Render(sub.Name()), pad, sub.Short)
	}
}

func (r *helpRenderer) flags() {
	var visible []*pflag.Flag
	r.cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			visible = append(visible, f)
		}
	})
	if len(visible) == 0 {
		return
	}

	// Parent commands get a one-line summary; the full listing belongs
	// to the leaf commands people actually run.
	if r.cmd.HasAvailableSubCommands() {
		names := make([]string, 0, len(visible))
		for _, f := range visible {
			names = append(names, flagLabel(f, "/"))
		}
		r.printf("\n %s\n", r.t.Muted.Render("Flags: "+strings.Join(names, ", ")))
		return
	}

	widest := 0
	labels := make([]string, len(visible))
	for i, f := range visible {
		labels[i] = flagLabel(f, ", ")
		if len(labels[i]) > widest {
			widest = len(labels[i])
		}
	}

	r.section("FLAGS")
	for i, f := range visible {
		pad := strings.Repeat(" ", widest-len(labels[i]))
		usage := f.Usage
		if showDefault(f) {
			usage += r.t.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		r.printf(" %s%s  %s\n", r.flag.Render(labels[i]), pad, usage)
	}
}

// examples renders an example block: comment lines muted, command lines
// with the leading binary name highlighted and flags dimmed.
func (r *helpRenderer) examples(block string) {
	root := strings.Split(r.cmd.CommandPath(), " ")[0]
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			r.printf("\n")
		case strings.HasPrefix(trimmed, "#"):
			r.printf(" %s\n", r.t.Muted.Render(trimmed))
		default:
			r.printf("  %s\n", r.exampleCommand(trimmed, root))
		}
	}
}

func (r *helpRenderer) exampleCommand(line, root string) string {
	words := strings.Fields(line)
	for i, word := range words {
		switch {
		case i == 0 && word == root:
			words[i] = r.name.Render(word)
		case i == 1 && !strings.HasPrefix(word, "-"):
			words[i] = r.flag.Render(word)
		case strings.HasPrefix(word, "-"):
			words[i] = r.t.Muted.Render(word)
		}
	}
	return strings.Join(words, " ")
}

func (r *helpRenderer) section(label string) {
	r.printf("\n %s\n", r.heading.Render(label))
}

// paragraph prints text wrapped to the help width with a one-space indent.
func (r *helpRenderer) paragraph(text string) {
	for _, line := range strings.Split(wrapText(text, r.width-2), "\n") {
		r.printf(" %s\n", line)
	}
}

func (r *helpRenderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

// splitExamples separates a Long description into prose and the example
// block introduced by an "Examples:" line, when one is present.
func splitExamples(long string) (body, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return strings.TrimSpace(long), ""
}

// flagLabel formats a flag for display, aligning long-only flags with
// the ones that also have a shorthand.
func flagLabel(f *pflag.Flag, sep string) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s%s--%s", f.Shorthand, sep, f.Name)
	}
	if sep == "/" {
		return "--" + f.Name
	}
	return "    --" + f.Name
}

// showDefault reports whether a flag's default is worth printing; zero
// values and empty lists only add noise.
func showDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "[]", "0", "-1":
		return false
	}
	return true
}

// wrapText wraps prose at width columns, keeping existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = helpMaxWidth
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			out = append(out, paragraph)
			continue
		}
		line := ""
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
