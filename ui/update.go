package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pulse/model"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-chartHeight-12, minTableHeight))
		return m, nil

	case StatsMsg:
		m.cpu = msg.Sample.CPUPercent
		m.mem = msg.Sample.MemoryPercent
		return m, nil

	case HostMsg:
		m.host = msg.Info
		m.haveHost = true
		return m, nil

	case ProcessesMsg:
		m.applyProcesses(msg.Rows)
		return m, nil

	case ChartMsg:
		m.chartCPU = msg.CPU
		m.chartMem = msg.Memory
		m.chart = renderChart(m.chartCPU, m.chartMem, chartHeight, m.palette)
		return m, nil

	case ConfigMsg:
		m.applyConfig(msg)
		return m, nil

	case TaskErrorMsg:
		m.statusText = fmt.Sprintf("%s stopped: %v", msg.Task, msg.Err)
		m.statusError = true
		return m, nil

	case terminateResultMsg:
		return m.handleTerminateResult(msg)

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}

	if m.mode == searchMode {
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	m.trackCursor()
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case normalMode:
		return m.handleNormalMode(msg)
	case searchMode:
		return m.handleSearchMode(msg)
	case confirmKillMode:
		return m.handleConfirmKill(msg)
	case dialogMode:
		return m.handleDialog(msg)
	case helpMode:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = helpMode
		return m, nil

	// Sorting
	case key.Matches(msg, m.keys.SortCPU):
		m.sortBy(model.SortByCPU)
		return m, nil
	case key.Matches(msg, m.keys.SortMem):
		m.sortBy(model.SortByMemory)
		return m, nil
	case key.Matches(msg, m.keys.SortPID):
		m.sortBy(model.SortByPID)
		return m, nil
	case key.Matches(msg, m.keys.SortName):
		m.sortBy(model.SortByName)
		return m, nil

	// Searching
	case key.Matches(msg, m.keys.Search):
		m.mode = searchMode
		m.searchInput.SetValue(m.lastSearch)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink

	// Terminate process
	case key.Matches(msg, m.keys.Kill):
		return m.requestTerminate(false)
	case key.Matches(msg, m.keys.ForceKill):
		return m.requestTerminate(true)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.trackCursor()
	return m, cmd
}

func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = normalMode
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.mode = normalMode
		m.searchInput.Blur()
		m.lastSearch = m.searchInput.Value()
		m.search(m.lastSearch)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = normalMode
		return m, m.terminateCmd(m.pendingPID, m.pendingName, m.pendingForce)

	case "n", "N", "esc", "q":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) handleDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "q":
		m.mode = normalMode
		m.dialogText = ""
		m.dialogError = false
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = normalMode
	}
	return m, nil
}

// applyProcesses merges a fresh snapshot into the table and keeps the cursor
// on the previously selected pid when it survived.
func (m *Model) applyProcesses(rows []model.ProcessRow) {
	if m.rebuild {
		m.procs.Replace(rows)
	} else {
		added, updated, removed := m.procs.Reconcile(rows)
		m.log.WithFields(logrus.Fields{
			"added":   added,
			"updated": updated,
			"removed": removed,
		}).Debug("process table reconciled")
	}
	m.syncTable()
}

// syncTable pushes the process table into the widget and restores the
// cursor. When the selected pid is gone the cursor stays at the same index.
func (m *Model) syncTable() {
	if m.procs == nil {
		return
	}
	m.table.SetColumns(m.buildColumns())

	cursor := m.table.Cursor()
	m.table.SetRows(m.buildRows(m.procs.Rows()))

	n := m.procs.Len()
	if n == 0 {
		m.selectedPID = 0
		return
	}
	idx := m.procs.Index(m.selectedPID)
	if idx < 0 {
		idx = min(max(cursor, 0), n-1)
	}
	m.table.SetCursor(idx)
	row, _ := m.procs.Row(idx)
	m.selectedPID = row.PID
}

// trackCursor records the pid under the cursor after navigation.
func (m *Model) trackCursor() {
	if row, ok := m.procs.Row(m.table.Cursor()); ok {
		m.selectedPID = row.PID
	}
}

// buildColumns marks the column of the last one-shot sort.
func (m *Model) buildColumns() []table.Column {
	columns := m.table.Columns()
	columns[0].Title = "PID"
	columns[1].Title = "NAME"
	columns[2].Title = "CPU%"
	columns[3].Title = "MEM%"

	indicator := "↓"
	if !m.sorted.Descending() {
		indicator = "↑"
	}
	switch m.sorted {
	case model.SortByPID:
		columns[0].Title = "PID " + indicator
	case model.SortByName:
		columns[1].Title = "NAME " + indicator
	case model.SortByCPU:
		columns[2].Title = "CPU% " + indicator
	case model.SortByMemory:
		columns[3].Title = "MEM% " + indicator
	}
	return columns
}

// buildRows converts process rows into table rows. Cells stay plain text:
// the table truncates by byte length, which would cut escape sequences.
func (m *Model) buildRows(rows []model.ProcessRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			strconv.Itoa(int(r.PID)),
			truncate(r.Name, 28),
			formatCPU(r.CPU),
			formatMemory(r.Memory),
		})
	}
	return out
}

// loadCounts returns how many rows are over a threshold and how many are
// over half of it.
func (m Model) loadCounts() (high, med int) {
	for _, r := range m.procs.Rows() {
		switch {
		case r.CPU > m.cfg.CPUThreshold || r.Memory > m.cfg.MemThreshold:
			high++
		case r.CPU > m.cfg.CPUThreshold/2 || r.Memory > m.cfg.MemThreshold/2:
			med++
		}
	}
	return high, med
}
