package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

type keyMap struct {
	Search    key.Binding
	SortCPU   key.Binding
	SortMem   key.Binding
	SortPID   key.Binding
	SortName  key.Binding
	Kill      key.Binding
	ForceKill key.Binding
	Refresh   key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SortCPU:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "sort cpu")),
		SortMem:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort mem")),
		SortPID:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "sort pid")),
		SortName:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "sort name")),
		Kill:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "terminate")),
		ForceKill: key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "force kill")),
		Refresh:   key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "refresh")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SortCPU, k.Kill, k.Refresh, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortCPU, k.SortMem, k.SortPID, k.SortName},
		{k.Search, k.Refresh},
		{k.Kill, k.ForceKill},
		{k.Theme, k.Help, k.Quit},
	}
}

// tableKeyMap is the table's default navigation without "k", which
// terminates the selected process here.
func tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.LineUp = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up"))
	km.LineDown = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	return km
}
