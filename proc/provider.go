package proc

import (
	"context"
	"errors"
	"io/fs"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"pulse/model"
)

var (
	ErrNoSuchProcess = errors.New("no such process")
	ErrAccessDenied  = errors.New("access denied")
	ErrZombie        = errors.New("zombie process")
	ErrInvalidPID    = errors.New("invalid pid")
)

// Provider is the source of every metric the monitor shows and the only way
// it acts on processes.
type Provider interface {
	// Processes lists the processes that could be read. A process that
	// vanishes, refuses access or is a zombie is left out rather than
	// failing the whole listing.
	Processes(ctx context.Context) ([]model.ProcessRow, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	Terminate(ctx context.Context, pid int32) error
	Kill(ctx context.Context, pid int32) error
}

// Classify maps an error from the process layer onto ErrNoSuchProcess,
// ErrAccessDenied or ErrZombie. Anything else comes back unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoSuchProcess), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrZombie):
		return err
	case errors.Is(err, process.ErrorProcessNotRunning),
		errors.Is(err, syscall.ESRCH),
		errors.Is(err, fs.ErrNotExist):
		return ErrNoSuchProcess
	case errors.Is(err, process.ErrorNotPermitted),
		errors.Is(err, fs.ErrPermission):
		return ErrAccessDenied
	}
	return err
}

// Skippable reports whether err only concerns a single process, so a
// listing may carry on without it.
func Skippable(err error) bool {
	return classKey(err) != nil
}

// classKey returns the bare sentinel err belongs to, or nil when it is not
// one of the per-process errors.
func classKey(err error) error {
	err = Classify(err)
	for _, sentinel := range []error{ErrNoSuchProcess, ErrAccessDenied, ErrZombie} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
