package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hooktools/core/state"
	"github.com/hooktools/core/tui/components/table"
	"github.com/hooktools/core/tui/theme"
)

// View renders the TUI with a table of discovered files.
func (m *Model) View() string {
	// Handle very small terminal sizes
	if m.width < 40 || m.height < 10 {
		return "Terminal too small. Please resize."
	}

	// Define fixed heights for header and footer
	const headerHeight = 3
	const footerHeight = 3
	const topMargin = 1

	mainAreaHeight := m.height - headerHeight - footerHeight - topMargin
	if mainAreaHeight < 5 {
		return "Terminal too small. Please resize."
	}

	t := theme.DefaultTheme

	headerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Orange).
		Width(m.width - 4).
		Height(headerHeight - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true)

	mainContentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Width(m.width - 4).
		Height(mainAreaHeight - 2).
		Padding(1)

	footerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Orange).
		Width(m.width - 4).
		Height(footerHeight - 2).
		Align(lipgloss.Center, lipgloss.Center)

	availableTableHeight := mainAreaHeight - 9
	if availableTableHeight < 1 {
		availableTableHeight = 1
	}

	headerContent := "PRE-COMMIT FILES"
	if m.streaming {
		headerContent += "  " + t.Success.Render(theme.IconRunning+" live")
	}

	var mainContent string
	switch {
	case m.help.ShowAll:
		mainContent = m.help.View(m.keys)
	case m.showDetails && len(m.viewFiles) > 0:
		mainContent = m.buildDetailsView()
	default:
		mainContent = m.buildTableView(availableTableHeight)
	}

	var footerParts []string
	if m.err != nil {
		footerParts = append(footerParts, t.Error.Render("error: "+m.err.Error()))
	}
	if filterVal := m.filterInput.Value(); filterVal != "" || m.filterInput.Focused() {
		footerParts = append(footerParts, theme.IconFilter+" "+m.filterInput.View())
	}
	if len(footerParts) == 0 {
		footerParts = append(footerParts, m.help.View(m.keys))
	}
	footerContent := strings.Join(footerParts, "  ")

	header := headerStyle.Render(headerContent)
	mainContentBox := mainContentStyle.Render(mainContent)
	footer := footerStyle.Render(footerContent)

	fullLayout := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		mainContentBox,
		footer,
	)

	// Top margin prevents border cutoff
	return "\n" + fullLayout
}

// buildTableView constructs and renders the main table of files.
func (m *Model) buildTableView(availableHeight int) string {
	if len(m.viewFiles) == 0 {
		if m.filterInput.Value() != "" {
			return "No files match the current filter."
		}
		return "No pre-commit files discovered.\n\nTip: run from a directory containing a .pre-commit-config.yaml"
	}

	allRows := buildTableRows(m.viewFiles)

	// Calculate visible rows based on scroll offset
	startIdx := m.scrollOffset
	if startIdx >= len(allRows) {
		startIdx = 0
	}
	endIdx := startIdx + availableHeight
	if endIdx > len(allRows) {
		endIdx = len(allRows)
	}

	visibleRows := allRows[startIdx:endIdx]

	// Adjust cursor to be relative to the visible window
	relativeCursor := m.cursor - startIdx
	if relativeCursor < 0 {
		relativeCursor = 0
	}
	if relativeCursor >= len(visibleRows) {
		relativeCursor = len(visibleRows) - 1
	}

	mainContent := table.SelectableTable(
		[]string{" ", "KIND", "PATH", "REPOS", "HOOKS", "ISSUES"},
		visibleRows,
		relativeCursor,
	)

	// Add scroll indicator if there are more items
	if len(allRows) > availableHeight {
		mainContent += "\n" + lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("Showing %d-%d of %d files", startIdx+1, endIdx, len(allRows)),
		)
	}

	return mainContent
}

// buildDetailsView renders the validation findings for the selected file.
func (m *Model) buildDetailsView() string {
	t := theme.DefaultTheme
	f := m.viewFiles[m.cursor]

	var b strings.Builder
	b.WriteString(t.Bold.Render(f.Path) + "\n\n")

	items := [][]string{
		{"Kind", f.Kind},
		{"Status", statusIcon(f)},
	}
	if f.Kind == "config" {
		items = append(items, []string{"Repos", fmt.Sprintf("%d", f.Repos)})
	}
	items = append(items, []string{"Hooks", fmt.Sprintf("%d", f.Hooks)})
	if !f.ValidatedAt.IsZero() {
		items = append(items, []string{"Checked", f.ValidatedAt.Format("15:04:05")})
	}
	b.WriteString(table.StatusTable(items))
	b.WriteString("\n")

	if len(f.Errors) > 0 {
		b.WriteString("\n" + t.Error.Render("Errors") + "\n")
		for _, e := range f.Errors {
			b.WriteString("  " + theme.IconError + " " + e + "\n")
		}
	}
	if len(f.Warnings) > 0 {
		b.WriteString("\n" + t.Warning.Render("Warnings") + "\n")
		for _, w := range f.Warnings {
			b.WriteString("  " + theme.IconWarning + " " + w + "\n")
		}
	}
	if len(f.Errors) == 0 && len(f.Warnings) == 0 {
		b.WriteString("\n" + t.Success.Render(theme.IconSuccess+" No findings") + "\n")
	}

	return t.DetailsBox.Render(b.String())
}

// buildTableRows creates the data rows for the file table.
func buildTableRows(files []*state.FileState) [][]string {
	var rows [][]string
	for _, f := range files {
		issues := ""
		if n := len(f.Errors); n > 0 {
			issues = theme.DefaultTheme.Error.Render(fmt.Sprintf("%d", n))
		} else if n := len(f.Warnings); n > 0 {
			issues = theme.DefaultTheme.Warning.Render(fmt.Sprintf("%d", n))
		}

		repos := ""
		if f.Kind == "config" {
			repos = fmt.Sprintf("%d", f.Repos)
		}

		rows = append(rows, []string{
			statusIcon(f),
			kindAbbreviation(f.Kind),
			shortenPath(f.Path),
			repos,
			fmt.Sprintf("%d", f.Hooks),
			issues,
		})
	}
	return rows
}
