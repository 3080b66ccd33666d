package ui

import (
	"context"

	"pulse/config"
	"pulse/model"
)

// Actions are the side effects the dashboard may request. The monitor
// engine implements them.
type Actions interface {
	Terminate(ctx context.Context, pid int32) error
	Kill(ctx context.Context, pid int32) error
	// Refresh asks for a process refresh as soon as possible. It must not
	// block.
	Refresh()
}

// Messages posted by the background tasks. They are the only way data
// reaches the dashboard.

type StatsMsg struct {
	Sample model.SystemSample
}

type HostMsg struct {
	Info model.HostInfo
}

type ProcessesMsg struct {
	Rows []model.ProcessRow
}

type ChartMsg struct {
	CPU    []float64
	Memory []float64
}

// TaskErrorMsg reports a background task that stopped on an error.
type TaskErrorMsg struct {
	Task string
	Err  error
}

type ConfigMsg struct {
	Config config.Config
}

// Messages produced inside the dashboard.

type terminateResultMsg struct {
	pid   int32
	name  string
	force bool
	err   error
}

type statusMsg struct {
	text    string
	isError bool
}

// UI Modes

type uiMode int

const (
	normalMode uiMode = iota
	searchMode
	confirmKillMode
	dialogMode
	helpMode
)
