package ui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"pulse/config"
	"pulse/model"
	"pulse/proc"
)

// sortBy reorders the displayed rows once. Later refreshes reconcile into
// this order without sorting again.
func (m *Model) sortBy(col model.SortColumn) {
	m.procs.SortBy(col)
	m.sorted = col
	m.syncTable()
}

// search selects the first displayed row whose name contains term or whose
// pid equals it. No match leaves the selection alone.
func (m *Model) search(term string) {
	idx := m.procs.Find(term)
	if idx < 0 {
		return
	}
	row, _ := m.procs.Row(idx)
	m.selectedPID = row.PID
	m.table.SetCursor(idx)
}

func (m Model) requestTerminate(force bool) (tea.Model, tea.Cmd) {
	row, ok := m.procs.Row(m.procs.Index(m.selectedPID))
	if !ok || m.actions == nil {
		return m, nil
	}
	if !m.cfg.ConfirmKill {
		return m, m.terminateCmd(row.PID, row.Name, force)
	}
	m.pendingPID = row.PID
	m.pendingName = row.Name
	m.pendingForce = force
	m.mode = confirmKillMode
	return m, nil
}

func (m Model) terminateCmd(pid int32, name string, force bool) tea.Cmd {
	actions := m.actions
	timeout := m.cfg.TerminateTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var err error
		if force {
			err = actions.Kill(ctx, pid)
		} else {
			err = actions.Terminate(ctx, pid)
		}
		return terminateResultMsg{pid: pid, name: name, force: force, err: err}
	}
}

func (m Model) handleTerminateResult(msg terminateResultMsg) (tea.Model, tea.Cmd) {
	verb := "terminated"
	if msg.force {
		verb = "killed"
	}

	m.mode = dialogMode
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("pid", msg.pid).Warn("terminate failed")
		m.dialogText = fmt.Sprintf("Could not terminate %s (%d):\n%s", msg.name, msg.pid, describeError(msg.err))
		m.dialogError = true
		m.statusText = fmt.Sprintf("Error: %v", msg.err)
		m.statusError = true
		return m, nil
	}

	m.log.WithField("pid", msg.pid).Info("process " + verb)
	m.dialogText = fmt.Sprintf("Process %s (%d) %s.", msg.name, msg.pid, verb)
	m.dialogError = false
	m.statusText = fmt.Sprintf("Sent %s to PID %d", signalName(msg.force), msg.pid)
	m.statusError = false
	return m, m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	actions := m.actions
	if actions == nil {
		return nil
	}
	return func() tea.Msg {
		actions.Refresh()
		return nil
	}
}

// toggleTheme swaps the palette and saves the choice in the background.
func (m *Model) toggleTheme() tea.Cmd {
	if m.cfg.Theme == config.ThemeLight {
		m.cfg.Theme = config.ThemeDark
	} else {
		m.cfg.Theme = config.ThemeLight
	}
	m.applyTheme()

	if m.configPath == "" {
		return nil
	}
	path, cfg := m.configPath, m.cfg
	saver := m.saver
	gen := saver.next()
	return func() tea.Msg {
		saved, err := saver.save(gen, path, &cfg)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: saving theme: %v", err), isError: true}
		}
		if !saved {
			return nil
		}
		return statusMsg{text: "Theme: " + cfg.Theme}
	}
}

// themeSaver orders background saves so a save queued by an older toggle
// never overwrites a newer one.
type themeSaver struct {
	mu     sync.Mutex
	latest uint64
}

func (s *themeSaver) next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// save writes cfg unless a newer generation has been queued since gen.
func (s *themeSaver) save(gen uint64, path string, cfg *config.Config) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.latest {
		return false, nil
	}
	return true, config.Save(path, cfg)
}

// applyConfig takes a reloaded config. The history size only applies on
// restart because the windows are sized once.
func (m *Model) applyConfig(msg ConfigMsg) {
	cfg := msg.Config
	cfg.Validate()
	cfg.HistorySize = m.cfg.HistorySize
	themeChanged := cfg.Theme != m.cfg.Theme
	m.cfg = cfg
	if themeChanged {
		m.applyTheme()
	} else {
		m.syncTable()
	}
	m.statusText = "Config reloaded"
	m.statusError = false
}

func describeError(err error) string {
	switch {
	case errors.Is(err, proc.ErrNoSuchProcess):
		return "the process no longer exists"
	case errors.Is(err, proc.ErrAccessDenied):
		return "access denied"
	}
	return err.Error()
}

func signalName(force bool) string {
	if force {
		return "SIGKILL"
	}
	return "SIGTERM"
}
