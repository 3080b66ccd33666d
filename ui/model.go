package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pulse/config"
	"pulse/model"
)

const (
	chartHeight    = 10
	minTableHeight = 5
)

// Options configure a new dashboard.
type Options struct {
	Config     config.Config
	ConfigPath string // theme changes are saved here; empty disables saving
	Actions    Actions
	Log        *logrus.Entry
	// Rebuild replaces the whole table on every refresh instead of
	// reconciling it in place. Selection still follows the pid.
	Rebuild bool
}

// Model holds TUI state
type Model struct {
	cfg        config.Config
	configPath string
	saver      *themeSaver
	actions    Actions
	log        *logrus.Entry
	rebuild    bool

	table       table.Model
	procs       *model.ProcessTable
	selectedPID int32
	sorted      model.SortColumn

	cpu, mem float64
	host     model.HostInfo
	haveHost bool

	chartCPU []float64
	chartMem []float64
	chart    string

	width  int
	height int

	// Searching
	searchInput textinput.Model
	lastSearch  string
	mode        uiMode

	// Terminate confirmation
	pendingPID   int32
	pendingName  string
	pendingForce bool

	dialogText  string
	dialogError bool

	// Status messages
	statusText  string
	statusError bool

	palette Palette
	styles  styles
	keys    keyMap
	help    help.Model
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	cfg.Validate()

	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	columns := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "NAME", Width: 28},
		{Title: "CPU%", Width: 8},
		{Title: "MEM%", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
		table.WithKeyMap(tableKeyMap()),
	)

	// Setup search input
	ti := textinput.New()
	ti.Placeholder = "name or pid..."
	ti.CharLimit = 64

	empty := model.NewWindow(cfg.HistorySize).Values()

	m := Model{
		cfg:         cfg,
		configPath:  opts.ConfigPath,
		saver:       &themeSaver{},
		actions:     opts.Actions,
		log:         log,
		rebuild:     opts.Rebuild,
		table:       t,
		procs:       model.NewProcessTable(),
		searchInput: ti,
		mode:        normalMode,
		chartCPU:    empty,
		chartMem:    empty,
		keys:        newKeyMap(),
		help:        help.New(),
	}
	m.applyTheme()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// applyTheme rebuilds every style from the configured palette.
func (m *Model) applyTheme() {
	m.palette = paletteFor(m.cfg.Theme)
	m.styles = newStyles(m.palette)
	m.table.SetStyles(tableStyles(m.palette))
	m.help.Styles.ShortKey = m.styles.keybind
	m.help.Styles.ShortDesc = m.styles.keybindDesc
	m.help.Styles.FullKey = m.styles.keybind
	m.help.Styles.FullDesc = m.styles.keybindDesc
	m.searchInput.PromptStyle = m.styles.keybind
	m.searchInput.TextStyle = m.styles.root
	m.chart = renderChart(m.chartCPU, m.chartMem, chartHeight, m.palette)
	m.syncTable()
}

// Accessors

// Rows returns the displayed rows in display order.
func (m Model) Rows() []model.ProcessRow { return m.procs.Rows() }

// SelectedPID returns the pid under the cursor, or 0 when the table is empty.
func (m Model) SelectedPID() int32 { return m.selectedPID }

func (m Model) Theme() string { return m.cfg.Theme }
