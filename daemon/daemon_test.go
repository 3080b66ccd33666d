package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/config"
	"pulse/model"
)

type listOnly struct {
	rows []model.ProcessRow
	err  error
}

func (l *listOnly) Processes(context.Context) ([]model.ProcessRow, error) { return l.rows, l.err }
func (l *listOnly) CPUPercent(context.Context) (float64, error)           { return 0, nil }
func (l *listOnly) MemoryPercent(context.Context) (float64, error)        { return 0, nil }
func (l *listOnly) Terminate(context.Context, int32) error                { return nil }
func (l *listOnly) Kill(context.Context, int32) error                     { return nil }

func newTestDaemon(rows []model.ProcessRow) (*Daemon, *test.Hook, *time.Time) {
	l, hook := test.NewNullLogger()
	cfg := *config.Default()
	cfg.CPUThreshold = 50
	cfg.MemThreshold = 10

	d := New(&listOnly{rows: rows}, cfg, "", logrus.NewEntry(l))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	return d, hook, &now
}

func TestEvaluateThresholds(t *testing.T) {
	d, _, _ := newTestDaemon(nil)

	alerts := d.evaluate([]model.ProcessRow{
		{PID: 1, Name: "idle", CPU: 1, Memory: 1},
		{PID: 2, Name: "spin", CPU: 97, Memory: 1},
		{PID: 3, Name: "hog", CPU: 2, Memory: 30},
		{PID: 4, Name: "both", CPU: 50, Memory: 10},
	})

	require.Len(t, alerts, 4)
	assert.Equal(t, Alert{PID: 2, Name: "spin", Resource: "cpu", Value: 97, Threshold: 50}, alerts[0])
	assert.Equal(t, "memory", alerts[1].Resource)
	assert.Equal(t, int32(4), alerts[2].PID)
	assert.Equal(t, int32(4), alerts[3].PID)
}

func TestEvaluateCooldown(t *testing.T) {
	d, _, now := newTestDaemon(nil)
	rows := []model.ProcessRow{{PID: 2, Name: "spin", CPU: 97}}

	assert.Len(t, d.evaluate(rows), 1)
	*now = now.Add(30 * time.Second)
	assert.Empty(t, d.evaluate(rows))
	*now = now.Add(31 * time.Second)
	assert.Len(t, d.evaluate(rows), 1)
}

func TestEvaluateForgetsExitedProcesses(t *testing.T) {
	d, _, _ := newTestDaemon(nil)
	rows := []model.ProcessRow{{PID: 2, Name: "spin", CPU: 97}}

	require.Len(t, d.evaluate(rows), 1)
	d.evaluate(nil)
	assert.Empty(t, d.lastAlerts)
	assert.Len(t, d.evaluate(rows), 1)
}

func TestSetConfigChangesThresholds(t *testing.T) {
	d, _, _ := newTestDaemon(nil)
	cfg := *config.Default()
	cfg.CPUThreshold = 99

	d.SetConfig(cfg)
	assert.Empty(t, d.evaluate([]model.ProcessRow{{PID: 2, CPU: 97}}))
}

func TestCheckLogsAlerts(t *testing.T) {
	d, hook, _ := newTestDaemon([]model.ProcessRow{{PID: 2, Name: "spin", CPU: 97}})

	require.NoError(t, d.Check(context.Background()))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "high cpu usage", entry.Message)
	assert.Equal(t, int32(2), entry.Data["pid"])
}

func TestRunStopsOnListFailure(t *testing.T) {
	d, _, _ := newTestDaemon(nil)
	d.provider = &listOnly{err: errors.New("no /proc")}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := d.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold check")
}
