package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRunsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	task := NewTask("test", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- task.Run(ctx) }()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("task did not stop after cancel")
	}
}

func TestTaskTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	task := NewTask("test", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	go task.Run(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestTaskTrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	task := NewTask("test", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	go task.Run(ctx)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	task.Trigger()
	require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestTaskTriggerNeverBlocks(t *testing.T) {
	task := NewTask("test", time.Hour, func(context.Context) error { return nil })

	done := make(chan struct{})
	go func() {
		for n := 0; n < 100; n++ {
			task.Trigger()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger blocked with no runner")
	}
	assert.Len(t, task.trigger, 1)
}

func TestTaskStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var runs atomic.Int32
	task := NewTask("sampler", 5*time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 2 {
			return boom
		}
		return nil
	})

	err := task.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sampler")
	assert.Equal(t, int32(2), runs.Load())
}

func TestTaskErrorAfterCancelIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := NewTask("test", time.Hour, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	assert.NoError(t, task.Run(ctx))
}

func TestTaskSetInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	task := NewTask("test", time.Hour, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	go task.Run(ctx)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	task.SetInterval(10 * time.Millisecond)
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestTaskSetIntervalKeepsLatest(t *testing.T) {
	task := NewTask("test", time.Hour, func(context.Context) error { return nil })
	task.SetInterval(time.Second)
	task.SetInterval(2 * time.Second)
	task.SetInterval(0)

	require.Len(t, task.reset, 1)
	assert.Equal(t, 2*time.Second, <-task.reset)
}
