package monitor

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pulse/config"
	"pulse/proc"
	"pulse/ui"
)

// Options configure an Engine.
type Options struct {
	Provider   proc.Provider
	Host       HostFunc
	Config     config.Config
	ConfigPath string // watched for changes when set
	Log        *logrus.Entry
}

// Engine owns the background tasks feeding the dashboard and carries out
// the actions the dashboard asks for.
type Engine struct {
	provider   proc.Provider
	host       HostFunc
	cfg        config.Config
	configPath string
	log        *logrus.Entry

	mu        sync.Mutex
	sampler   *Sampler
	sample    *Task
	processes *Task
	chart     *Task

	wg sync.WaitGroup
}

func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	cfg := opts.Config
	cfg.Validate()
	return &Engine{
		provider:   opts.Provider,
		host:       opts.Host,
		cfg:        cfg,
		configPath: opts.ConfigPath,
		log:        log,
	}
}

// Run starts the dashboard and the background tasks and blocks until the
// user quits or ctx is done. The tasks are stopped and awaited before Run
// returns.
func (e *Engine) Run(ctx context.Context, opts ui.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts.Actions = e
	opts.Config = e.cfg
	if opts.Log == nil {
		opts.Log = e.log.WithField("component", "ui")
	}
	program := tea.NewProgram(ui.NewModel(opts), tea.WithAltScreen())

	e.Start(ctx, program)

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()
	cancel()
	e.Wait()
	if err != nil {
		return errors.Wrap(err, "running dashboard")
	}
	return nil
}

// Start launches the sampler, the process refresher, the chart updater and
// the config watcher. Everything they produce goes to sink.
func (e *Engine) Start(ctx context.Context, sink Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sampler = NewSampler(e.provider, sink, e.cfg.HistorySize)
	refresher := NewRefresher(e.provider, e.host, sink, e.log.WithField("component", "refresher"))
	chart := NewChartUpdater(e.sampler, sink)

	e.sample = NewTask("cpu/memory sampler", e.cfg.SampleInterval, e.sampler.Sample)
	e.processes = NewTask("process refresher", e.cfg.ProcessInterval, refresher.Refresh)
	e.chart = NewTask("chart updater", e.cfg.ChartInterval, chart.Update)

	for _, t := range []*Task{e.sample, e.processes, e.chart} {
		e.wg.Add(1)
		go e.runTask(ctx, t, sink)
	}

	if e.configPath != "" {
		e.wg.Add(1)
		go e.watchConfig(ctx, sink)
	}
}

// Wait blocks until every task started by Start has returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) runTask(ctx context.Context, t *Task, sink Sink) {
	defer e.wg.Done()

	log := e.log.WithField("task", t.Name())
	log.Debug("task started")
	if err := t.Run(ctx); err != nil {
		log.WithError(err).Error("task stopped")
		sink.Send(ui.TaskErrorMsg{Task: t.Name(), Err: err})
		return
	}
	log.Debug("task stopped")
}

func (e *Engine) watchConfig(ctx context.Context, sink Sink) {
	defer e.wg.Done()

	log := e.log.WithField("component", "config")
	err := config.Watch(ctx, e.configPath, log, func(cfg *config.Config) {
		e.ApplyConfig(cfg)
		sink.Send(ui.ConfigMsg{Config: *cfg})
	})
	if err != nil {
		log.WithError(err).Warn("config hot reload disabled")
	}
}

// ApplyConfig moves the running tasks to the intervals of cfg.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	c := *cfg
	c.Validate()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = c
	if e.sample == nil {
		return
	}
	e.sample.SetInterval(c.SampleInterval)
	e.processes.SetInterval(c.ProcessInterval)
	e.chart.SetInterval(c.ChartInterval)
}

// Terminate asks the process to exit.
func (e *Engine) Terminate(ctx context.Context, pid int32) error {
	if err := e.provider.Terminate(ctx, pid); err != nil {
		return err
	}
	e.log.WithField("pid", pid).Info("sent SIGTERM")
	return nil
}

// Kill ends the process without giving it a chance to clean up.
func (e *Engine) Kill(ctx context.Context, pid int32) error {
	if err := e.provider.Kill(ctx, pid); err != nil {
		return err
	}
	e.log.WithField("pid", pid).Info("sent SIGKILL")
	return nil
}

// Refresh schedules a process refresh without waiting for it.
func (e *Engine) Refresh() {
	e.mu.Lock()
	t := e.processes
	e.mu.Unlock()
	if t != nil {
		t.Trigger()
	}
}
