package monitor

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Task runs a function once immediately and then on every tick, until the
// context is done or the function fails. Trigger runs it early; SetInterval
// changes the period without restarting.
type Task struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error

	trigger chan struct{}
	reset   chan time.Duration
}

func NewTask(name string, interval time.Duration, fn func(ctx context.Context) error) *Task {
	if interval <= 0 {
		interval = time.Second
	}
	return &Task{
		name:     name,
		interval: interval,
		fn:       fn,
		trigger:  make(chan struct{}, 1),
		reset:    make(chan time.Duration, 1),
	}
}

func (t *Task) Name() string { return t.name }

// Trigger asks for an extra run. It never blocks; bursts collapse into one run.
func (t *Task) Trigger() {
	select {
	case t.trigger <- struct{}{}:
	default:
	}
}

// SetInterval replaces the period. Only the latest pending value is kept.
func (t *Task) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	for {
		select {
		case t.reset <- d:
			return
		default:
		}
		select {
		case <-t.reset:
		default:
		}
	}
}

// Run blocks until ctx is done (returning nil) or the function returns an
// error, which ends the task.
func (t *Task) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if err := t.fn(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, t.name)
		}
		if !t.wait(ctx, ticker) {
			return nil
		}
	}
}

func (t *Task) wait(ctx context.Context, ticker *time.Ticker) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			return true
		case <-t.trigger:
			return true
		case d := <-t.reset:
			ticker.Reset(d)
		}
	}
}
