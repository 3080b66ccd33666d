package proc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/process"
)

// Terminate asks the process to exit (SIGTERM on unix).
func (s *System) Terminate(ctx context.Context, pid int32) error {
	return signal(ctx, pid, "terminate", (*process.Process).TerminateWithContext)
}

// Kill stops the process immediately (SIGKILL on unix).
func (s *System) Kill(ctx context.Context, pid int32) error {
	return signal(ctx, pid, "kill", (*process.Process).KillWithContext)
}

func signal(ctx context.Context, pid int32, action string, send func(*process.Process, context.Context) error) error {
	if pid <= 0 {
		return errors.Wrapf(ErrInvalidPID, "%s pid %d", action, pid)
	}

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return errors.Wrapf(Classify(err), "%s pid %d", action, pid)
	}
	if err := send(p, ctx); err != nil {
		return errors.Wrapf(Classify(err), "%s pid %d", action, pid)
	}
	return nil
}
