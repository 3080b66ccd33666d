package monitor

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"pulse/model"
	"pulse/proc"
	"pulse/ui"
)

// Sink receives messages for the dashboard. *tea.Program satisfies it.
type Sink interface {
	Send(msg tea.Msg)
}

// Sampler reads system CPU and memory usage into two rolling windows.
type Sampler struct {
	provider proc.Provider
	sink     Sink

	mu  sync.Mutex
	cpu *model.Window
	mem *model.Window
}

func NewSampler(p proc.Provider, sink Sink, history int) *Sampler {
	return &Sampler{
		provider: p,
		sink:     sink,
		cpu:      model.NewWindow(history),
		mem:      model.NewWindow(history),
	}
}

// Sample takes one reading, stores it and posts it to the dashboard.
func (s *Sampler) Sample(ctx context.Context) error {
	cpu, err := s.provider.CPUPercent(ctx)
	if err != nil {
		return errors.Wrap(err, "reading cpu usage")
	}
	mem, err := s.provider.MemoryPercent(ctx)
	if err != nil {
		return errors.Wrap(err, "reading memory usage")
	}

	s.mu.Lock()
	s.cpu.Push(cpu)
	s.mem.Push(mem)
	s.mu.Unlock()

	s.sink.Send(ui.StatsMsg{Sample: model.SystemSample{
		At:            time.Now(),
		CPUPercent:    cpu,
		MemoryPercent: mem,
	}})
	return nil
}

// Windows returns copies of both windows, oldest sample first.
func (s *Sampler) Windows() (cpu, mem []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cpu.Values(), s.mem.Values()
}
