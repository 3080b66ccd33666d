package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"pulse/config"
)

// Palette is the colour set of one theme. Foreground and Background are the
// pair the theme toggle swaps.
type Palette struct {
	Name       string
	Foreground lipgloss.Color
	Background lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color
	OK         lipgloss.Color
	Warn       lipgloss.Color
	Danger     lipgloss.Color
}

var (
	darkPalette = Palette{
		Name:       config.ThemeDark,
		Foreground: lipgloss.Color("252"),
		Background: lipgloss.Color("235"),
		Accent:     lipgloss.Color("170"),
		Muted:      lipgloss.Color("243"),
		Border:     lipgloss.Color("240"),
		SelectedFg: lipgloss.Color("229"),
		SelectedBg: lipgloss.Color("57"),
		OK:         lipgloss.Color("42"),
		Warn:       lipgloss.Color("214"),
		Danger:     lipgloss.Color("196"),
	}

	lightPalette = Palette{
		Name:       config.ThemeLight,
		Foreground: lipgloss.Color("235"),
		Background: lipgloss.Color("252"),
		Accent:     lipgloss.Color("91"),
		Muted:      lipgloss.Color("245"),
		Border:     lipgloss.Color("250"),
		SelectedFg: lipgloss.Color("255"),
		SelectedBg: lipgloss.Color("27"),
		OK:         lipgloss.Color("28"),
		Warn:       lipgloss.Color("130"),
		Danger:     lipgloss.Color("160"),
	}
)

func paletteFor(theme string) Palette {
	if theme == config.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// styles split for readability
type styles struct {
	root         lipgloss.Style
	title        lipgloss.Style
	label        lipgloss.Style
	header       lipgloss.Style
	base         lipgloss.Style
	high         lipgloss.Style
	med          lipgloss.Style
	success      lipgloss.Style
	err          lipgloss.Style
	confirm      lipgloss.Style
	dialog       lipgloss.Style
	dialogErr    lipgloss.Style
	sortedColumn lipgloss.Style
	helpBox      lipgloss.Style
	keybind      lipgloss.Style
	keybindDesc  lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		root: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Background),

		title: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Accent).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center),

		label: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Bold(true).
			MarginRight(4),

		header: lipgloss.NewStyle().
			Foreground(p.Muted),

		base: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border),

		high: lipgloss.NewStyle().Foreground(p.Danger),
		med:  lipgloss.NewStyle().Foreground(p.Warn),

		success: lipgloss.NewStyle().
			Foreground(p.OK).
			Bold(true),

		err: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),

		confirm: lipgloss.NewStyle().
			Foreground(p.Warn).
			Bold(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Warn).
			Padding(1, 2),

		dialog: lipgloss.NewStyle().
			Foreground(p.Foreground).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.OK).
			Padding(1, 2),

		dialogErr: lipgloss.NewStyle().
			Foreground(p.Danger).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(p.Danger).
			Padding(1, 2),

		sortedColumn: lipgloss.NewStyle().
			Foreground(p.OK).
			Bold(true).
			Underline(true),

		helpBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1).
			MarginTop(1),

		keybind: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		keybindDesc: lipgloss.NewStyle().
			Foreground(p.Muted),
	}
}

func tableStyles(p Palette) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(p.Accent)
	s.Cell = s.Cell.Foreground(p.Foreground)
	s.Selected = s.Selected.
		Foreground(p.SelectedFg).
		Background(p.SelectedBg).
		Bold(false)
	return s
}
