package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/todos/pkg/types"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	activeTab     = tabStyle.Foreground(lipgloss.Color("12")).Underline(true).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// renderTabs draws the filter selector with the active filter highlighted.
func renderTabs(active types.Filter) string {
	tabs := make([]string, 0, len(types.Filters))
	for _, f := range types.Filters {
		label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
		if f == active {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Faint(true).Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderCounts draws the done, remaining and total counters.
func renderCounts(remaining, total int) string {
	return fmt.Sprintf("%s %d  %s %d remaining  %s %d",
		successStyle.Render("✔"), total-remaining,
		pendingStyle.Render("•"), remaining,
		accentStyle.Render("Total"), total,
	)
}

// renderItem draws one row of the list.
func renderItem(t types.Todo, selected bool) string {
	box := mutedStyle.Render(boxUnchecked)
	text := t.Text
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return prefix + box + " " + text
}
