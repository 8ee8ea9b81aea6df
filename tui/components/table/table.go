// Package table provides styled table rendering helpers shared by the CLI
// and the browse TUI.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/hooktools/core/tui/theme"
)

// bordered builds the standard rounded-border table: themed headers,
// padded cells, zebra striping on odd rows.
func bordered(headers []string, rows [][]string) *ltable.Table {
	t := theme.DefaultTheme

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = t.TableHeader.Render(h)
	}

	tbl := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		Headers(styled...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := t.TableRow.Padding(0, 1)
			if row%2 == 1 {
				style = style.Background(t.Colors.VerySubtleBackground)
			}
			return style
		})

	for _, r := range rows {
		tbl = tbl.Row(r...)
	}
	return tbl
}

// SimpleTable renders a bordered table with headers and rows.
func SimpleTable(headers []string, rows [][]string) string {
	return bordered(headers, rows).String()
}

// StatusTable renders label/value pairs without a border, with muted labels.
func StatusTable(items [][]string) string {
	t := theme.DefaultTheme

	tbl := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, item := range items {
		if len(item) >= 2 {
			tbl = tbl.Row(t.Muted.Render(item[0]+":"), item[1])
		}
	}
	return tbl.String()
}

// SelectableTable renders a bordered table with a selection indicator
// to the left of the selected row, outside the border.
func SelectableTable(headers []string, rows [][]string, selectedIndex int) string {
	t := theme.DefaultTheme
	lines := strings.Split(bordered(headers, rows).String(), "\n")

	// With headers the rendered layout is top border, header row,
	// separator, then the data rows.
	selectedLine := 3 + selectedIndex
	arrow := t.Highlight.Render(theme.IconSelect)

	var b strings.Builder
	for i, line := range lines {
		prefix := "  "
		if i == selectedLine {
			prefix = arrow + " "
		}
		b.WriteString(prefix + line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
