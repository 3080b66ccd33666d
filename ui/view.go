package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pulse/model"
)

func (m Model) View() string {
	if m.mode == helpMode {
		return m.paint(m.renderHelp())
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(m.styles.header.Render(m.renderHeader()))
	b.WriteString("\n")
	b.WriteString(m.renderLabels())
	b.WriteString("\n\n")
	b.WriteString(m.chart)
	b.WriteString("\n\n")
	b.WriteString(m.styles.base.Render(m.table.View()))
	b.WriteString("\n")

	if m.mode == normalMode {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	switch m.mode {
	case searchMode:
		b.WriteString("\n")
		b.WriteString(m.renderSearchBar())
	case confirmKillMode:
		b.WriteString("\n")
		b.WriteString(m.renderConfirmKill())
	case dialogMode:
		b.WriteString("\n")
		b.WriteString(m.renderDialog())
	}

	return m.paint(b.String())
}

// paint applies the theme background to the whole screen.
func (m Model) paint(s string) string {
	style := m.styles.root
	if m.width > 0 {
		style = style.Width(m.width)
	}
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(s)
}

func (m Model) renderTitle() string {
	title := m.styles.title
	if m.width > 0 {
		title = title.Width(m.width)
	}
	return title.Render("PULSE - CPU & Memory Monitor")
}

func (m Model) renderHeader() string {
	parts := make([]string, 0, 4)
	if m.haveHost {
		parts = append(parts,
			fmt.Sprintf("Host: %s", m.host.Hostname),
			fmt.Sprintf("Load: %.2f %.2f %.2f", m.host.Load1, m.host.Load5, m.host.Load15),
			fmt.Sprintf("Uptime: %s", FormatUptime(m.host.Uptime)),
		)
	}
	parts = append(parts, fmt.Sprintf("Processes: %d", m.procs.Len()))
	if high, med := m.loadCounts(); high > 0 || med > 0 {
		parts = append(parts, "Busy: "+
			m.styles.high.Render(fmt.Sprintf("%d over", high))+" "+
			m.styles.med.Render(fmt.Sprintf("%d near", med)))
	}
	if m.sorted != model.SortNone {
		parts = append(parts, "Sorted: "+m.styles.sortedColumn.Render(m.sorted.String()))
	}
	if m.lastSearch != "" {
		parts = append(parts, "Search: "+m.styles.success.Render(m.lastSearch))
	}
	return strings.Join(parts, " | ")
}

func (m Model) renderLabels() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.label.Render(fmt.Sprintf("CPU Usage: %.1f%%", m.cpu)),
		m.styles.label.Render(fmt.Sprintf("Memory Usage: %.1f%%", m.mem)),
	)
}

func (m Model) renderStatus() string {
	style := m.styles.success
	if m.statusError {
		style = m.styles.err
	}
	return style.Render(m.statusText)
}

func (m Model) renderSearchBar() string {
	return m.styles.keybind.Render("Search: ") +
		m.searchInput.View() +
		m.styles.keybindDesc.Render(" (Enter to find, Esc to cancel)")
}

func (m Model) renderConfirmKill() string {
	verb := "Terminate"
	if m.pendingForce {
		verb = "Force kill"
	}
	return m.styles.confirm.Render(fmt.Sprintf("%s %s (%d)? (y/n)", verb, m.pendingName, m.pendingPID))
}

func (m Model) renderDialog() string {
	style := m.styles.dialog
	if m.dialogError {
		style = m.styles.dialogErr
	}
	return style.Render(m.dialogText + "\n\n" + m.styles.keybindDesc.Render("[enter] close"))
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "SORTING",
			keys: []struct{ key, desc string }{
				{"c", "Sort by CPU% (highest first)"},
				{"m", "Sort by MEM% (highest first)"},
				{"p", "Sort by PID"},
				{"n", "Sort by name"},
				{"", "Sorting applies once; refreshes keep the current order"},
			},
		},
		{
			title: "SEARCH",
			keys: []struct{ key, desc string }{
				{"/", "Search by name or pid"},
				{"Enter", "Select the first match"},
				{"Esc", "Cancel"},
			},
		},
		{
			title: "PROCESS MANAGEMENT",
			keys: []struct{ key, desc string }{
				{"k", "Terminate (SIGTERM)"},
				{"K", "Force kill (SIGKILL)"},
				{"r", "Refresh the process list now"},
				{"", "Requires appropriate permissions"},
			},
		},
		{
			title: "NAVIGATION",
			keys: []struct{ key, desc string }{
				{"↑/↓ or j", "Move selection"},
				{"PgUp/PgDn", "Page up/down"},
				{"Home/End", "Go to first/last"},
			},
		},
		{
			title: "GENERAL",
			keys: []struct{ key, desc string }{
				{"t", "Toggle dark/light theme"},
				{"?", "Show/hide this help"},
				{"q", "Quit program"},
			},
		},
	}

	for _, section := range sections {
		b.WriteString(m.styles.keybind.Render(section.title))
		b.WriteString("\n")

		for _, binding := range section.keys {
			if binding.key == "" {
				b.WriteString(m.styles.keybindDesc.Render("  " + binding.desc))
			} else {
				b.WriteString(fmt.Sprintf("  %s  %s",
					m.styles.keybind.Render(lipgloss.NewStyle().Width(12).Render(binding.key)),
					m.styles.keybindDesc.Render(binding.desc)))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.keybindDesc.Render("Press ? or esc to return..."))

	return m.styles.helpBox.Render(b.String())
}
