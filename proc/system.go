package proc

import (
	"context"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"

	"pulse/model"
)

// handle keeps a process open across refreshes. CPU percent is measured
// between two reads of the same handle, so handles must outlive a refresh.
type handle struct {
	p       *process.Process
	created int64
}

// System reads the local host through gopsutil.
type System struct {
	log *logrus.Entry

	mu      sync.Mutex
	handles map[int32]*handle
}

func NewSystem(log *logrus.Entry) *System {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &System{
		log:     log,
		handles: make(map[int32]*handle),
	}
}

func (s *System) Processes(ctx context.Context) ([]model.ProcessRow, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing pids")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]model.ProcessRow, 0, len(pids))
	seen := make(map[int32]struct{}, len(pids))
	skipped := make(map[error]int)
	failed := 0

	for _, pid := range pids {
		seen[pid] = struct{}{}

		row, err := s.read(ctx, pid)
		if err != nil {
			key := classKey(err)
			if key == nil {
				s.log.WithError(err).WithField("pid", pid).Debug("process read failed")
				failed++
			} else {
				skipped[key]++
			}
			delete(s.handles, pid)
			continue
		}
		rows = append(rows, row)
	}

	for pid := range s.handles {
		if _, ok := seen[pid]; !ok {
			delete(s.handles, pid)
		}
	}

	if len(skipped) > 0 || failed > 0 {
		s.log.WithFields(logrus.Fields{
			"gone":   skipped[ErrNoSuchProcess],
			"denied": skipped[ErrAccessDenied],
			"zombie": skipped[ErrZombie],
			"failed": failed,
			"listed": len(rows),
		}).Debug("skipped processes during refresh")
	}
	return rows, nil
}

// read must be called with s.mu held.
func (s *System) read(ctx context.Context, pid int32) (model.ProcessRow, error) {
	h, err := s.open(ctx, pid)
	if err != nil {
		return model.ProcessRow{}, err
	}

	status, err := h.p.StatusWithContext(ctx)
	if err != nil {
		return model.ProcessRow{}, Classify(err)
	}
	if slices.Contains(status, process.Zombie) {
		return model.ProcessRow{}, ErrZombie
	}

	name, err := h.p.NameWithContext(ctx)
	if err != nil {
		return model.ProcessRow{}, Classify(err)
	}
	cpuPct, err := h.p.PercentWithContext(ctx, 0)
	if err != nil {
		return model.ProcessRow{}, Classify(err)
	}
	memPct, err := h.p.MemoryPercentWithContext(ctx)
	if err != nil {
		return model.ProcessRow{}, Classify(err)
	}

	return model.ProcessRow{
		PID:    pid,
		Name:   name,
		CPU:    cpuPct,
		Memory: float64(memPct),
	}, nil
}

// open returns the cached handle for pid, replacing it when the pid has been
// reused by a newer process.
func (s *System) open(ctx context.Context, pid int32) (*handle, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, Classify(err)
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return nil, Classify(err)
	}

	if h, ok := s.handles[pid]; ok && h.created == created {
		return h, nil
	}
	h := &handle{p: p, created: created}
	s.handles[pid] = h
	return h, nil
}

func (s *System) CPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, errors.Wrap(err, "reading cpu percent")
	}
	if len(pcts) == 0 {
		return 0, errors.New("reading cpu percent: no data")
	}
	return pcts[0], nil
}

func (s *System) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "reading virtual memory")
	}
	return vm.UsedPercent, nil
}
