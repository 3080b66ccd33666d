package monitor

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"pulse/model"
	"pulse/proc"
)

// Snapshot is a one-shot reading for the non-interactive command.
type Snapshot struct {
	Sample model.SystemSample
	Host   model.HostInfo
	Rows   []model.ProcessRow
}

// TakeSnapshot reads the process list twice, wait apart, because per-process
// and system CPU usage are measured between two reads. The rows come back
// sorted by col.
func TakeSnapshot(ctx context.Context, p proc.Provider, host HostFunc, wait time.Duration, col model.SortColumn) (*Snapshot, error) {
	if _, err := p.Processes(ctx); err != nil {
		return nil, errors.Wrap(err, "listing processes")
	}
	if _, err := p.CPUPercent(ctx); err != nil {
		return nil, errors.Wrap(err, "reading cpu usage")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(wait):
	}

	rows, err := p.Processes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing processes")
	}
	cpu, err := p.CPUPercent(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading cpu usage")
	}
	mem, err := p.MemoryPercent(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading memory usage")
	}
	model.Sort(rows, col)

	s := &Snapshot{
		Sample: model.SystemSample{At: time.Now(), CPUPercent: cpu, MemoryPercent: mem},
		Rows:   rows,
	}
	if host != nil {
		// Host details are decoration; a failure leaves them empty.
		if info, err := host(ctx); err == nil {
			s.Host = info
		}
	}
	return s, nil
}
