package monitor

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"pulse/model"
	"pulse/proc"
)

type fakeProvider struct {
	mu sync.Mutex

	cpu, mem     []float64
	cpuErr       error
	procs        []model.ProcessRow
	procsErr     error
	terminateErr error

	listCalls  int
	terminated []int32
	killed     []int32
}

func (f *fakeProvider) Processes(context.Context) ([]model.ProcessRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.procsErr != nil {
		return nil, f.procsErr
	}
	return append([]model.ProcessRow(nil), f.procs...), nil
}

func (f *fakeProvider) CPUPercent(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cpuErr != nil {
		return 0, f.cpuErr
	}
	return pop(&f.cpu), nil
}

func (f *fakeProvider) MemoryPercent(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pop(&f.mem), nil
}

func (f *fakeProvider) Terminate(_ context.Context, pid int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.terminateErr != nil {
		return f.terminateErr
	}
	f.terminated = append(f.terminated, pid)
	return nil
}

func (f *fakeProvider) Kill(_ context.Context, pid int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed = append(f.killed, pid)
	return nil
}

func (f *fakeProvider) lists() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// pop returns the next queued value, repeating the last one when only one
// is left.
func pop(q *[]float64) float64 {
	if len(*q) == 0 {
		return 0
	}
	v := (*q)[0]
	if len(*q) > 1 {
		*q = (*q)[1:]
	}
	return v
}

var _ proc.Provider = (*fakeProvider)(nil)

type fakeSink struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *fakeSink) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *fakeSink) messages() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tea.Msg(nil), s.msgs...)
}

func messagesOf[T any](s *fakeSink) []T {
	var out []T
	for _, m := range s.messages() {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
