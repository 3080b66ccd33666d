// Package daemon is the headless mode: it watches the process list and logs
// every process that crosses the CPU or memory threshold.
package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pulse/config"
	"pulse/model"
	"pulse/monitor"
	"pulse/proc"
)

// DefaultCooldown is how long a process stays quiet after an alert.
const DefaultCooldown = 60 * time.Second

type Alert struct {
	PID       int32
	Name      string
	Resource  string // "cpu" or "memory"
	Value     float64
	Threshold float64
}

type Daemon struct {
	provider   proc.Provider
	configPath string
	log        *logrus.Entry
	cooldown   time.Duration
	now        func() time.Time

	mu         sync.Mutex
	cfg        config.Config
	lastAlerts map[int32]time.Time
}

func New(p proc.Provider, cfg config.Config, configPath string, log *logrus.Entry) *Daemon {
	cfg.Validate()
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Daemon{
		provider:   p,
		configPath: configPath,
		log:        log,
		cooldown:   DefaultCooldown,
		now:        time.Now,
		cfg:        cfg,
		lastAlerts: make(map[int32]time.Time),
	}
}

// Run checks the process list every process interval until ctx is done.
func (d *Daemon) Run(ctx context.Context) error {
	d.mu.Lock()
	interval := d.cfg.ProcessInterval
	d.mu.Unlock()

	task := monitor.NewTask("threshold check", interval, d.Check)

	var wg sync.WaitGroup
	if d.configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(ctx, d.configPath, d.log, func(cfg *config.Config) {
				d.SetConfig(*cfg)
				task.SetInterval(cfg.ProcessInterval)
			})
			if err != nil {
				d.log.WithError(err).Warn("config hot reload disabled")
			}
		}()
	}

	d.log.WithField("interval", interval).Info("watching processes")
	err := task.Run(ctx)
	wg.Wait()
	return err
}

// SetConfig swaps the thresholds and interval at runtime.
func (d *Daemon) SetConfig(cfg config.Config) {
	cfg.Validate()
	d.mu.Lock()
	d.cfg = cfg
	d.mu.Unlock()
	d.log.WithFields(logrus.Fields{
		"cpu_threshold": cfg.CPUThreshold,
		"mem_threshold": cfg.MemThreshold,
	}).Info("config reloaded")
}

// Check lists the processes once and logs an alert for each one over a
// threshold.
func (d *Daemon) Check(ctx context.Context) error {
	rows, err := d.provider.Processes(ctx)
	if err != nil {
		return err
	}
	for _, a := range d.evaluate(rows) {
		d.log.WithFields(logrus.Fields{
			"pid":       a.PID,
			"name":      a.Name,
			"value":     a.Value,
			"threshold": a.Threshold,
		}).Warnf("high %s usage", a.Resource)
	}
	return nil
}

func (d *Daemon) evaluate(rows []model.ProcessRow) []Alert {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	seen := make(map[int32]struct{}, len(rows))
	var alerts []Alert

	for _, r := range rows {
		seen[r.PID] = struct{}{}
		if t, ok := d.lastAlerts[r.PID]; ok && now.Sub(t) < d.cooldown {
			continue
		}

		fired := false
		if r.CPU >= d.cfg.CPUThreshold {
			alerts = append(alerts, Alert{PID: r.PID, Name: r.Name, Resource: "cpu", Value: r.CPU, Threshold: d.cfg.CPUThreshold})
			fired = true
		}
		if r.Memory >= d.cfg.MemThreshold {
			alerts = append(alerts, Alert{PID: r.PID, Name: r.Name, Resource: "memory", Value: r.Memory, Threshold: d.cfg.MemThreshold})
			fired = true
		}
		if fired {
			d.lastAlerts[r.PID] = now
		}
	}

	// a reused pid starts without a cooldown
	for pid := range d.lastAlerts {
		if _, ok := seen[pid]; !ok {
			delete(d.lastAlerts, pid)
		}
	}
	return alerts
}
