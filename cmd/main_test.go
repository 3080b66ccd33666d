package main

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSeams(t *testing.T, tty bool) (*tuiOptions, *snapshotOptions) {
	t.Helper()
	var gotTUI tuiOptions
	var gotSnap snapshotOptions

	oldTUI, oldSnap, oldWatch, oldTTY := runTUIFunc, runSnapshotFunc, runWatchFunc, isTerminal
	t.Cleanup(func() {
		runTUIFunc, runSnapshotFunc, runWatchFunc, isTerminal = oldTUI, oldSnap, oldWatch, oldTTY
	})

	runTUIFunc = func(o tuiOptions) error {
		gotTUI = o
		return nil
	}
	runSnapshotFunc = func(o snapshotOptions, _ io.Writer) error {
		gotSnap = o
		return nil
	}
	isTerminal = func() bool { return tty }
	return &gotTUI, &gotSnap
}

func TestNoArgsPrintsUsage(t *testing.T) {
	var stderr bytes.Buffer
	code := run(nil, io.Discard, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestHelpAndVersion(t *testing.T) {
	var stdout bytes.Buffer
	assert.Equal(t, 0, run([]string{"help"}, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "snapshot")

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"version"}, &stdout, io.Discard))
	assert.Equal(t, "pulse "+version+"\n", stdout.String())
}

func TestUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"daemon"}, io.Discard, &stderr))
	assert.Contains(t, stderr.String(), `unknown command: "daemon"`)
}

func TestTUIFlags(t *testing.T) {
	got, _ := stubSeams(t, true)

	code := run([]string{"tui", "--config", "/tmp/p.yaml", "-v", "--rebuild"}, io.Discard, io.Discard)
	require.Equal(t, 0, code)
	assert.Equal(t, tuiOptions{ConfigPath: "/tmp/p.yaml", Verbose: true, Rebuild: true}, *got)
}

func TestTUIRequiresTerminal(t *testing.T) {
	got, _ := stubSeams(t, false)

	var stderr bytes.Buffer
	code := run([]string{"tui"}, io.Discard, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "needs a terminal")
	assert.Empty(t, got.ConfigPath)
}

func TestTUIError(t *testing.T) {
	stubSeams(t, true)
	runTUIFunc = func(tuiOptions) error { return errors.New("boom") }

	var stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"tui"}, io.Discard, &stderr))
	assert.Contains(t, stderr.String(), "boom")
}

func TestSnapshotFlags(t *testing.T) {
	_, got := stubSeams(t, false)

	code := run([]string{"snapshot", "--sort", "mem", "-n", "5", "--interval", "250ms"}, io.Discard, io.Discard)
	require.Equal(t, 0, code)
	assert.Equal(t, snapshotOptions{Interval: 250 * time.Millisecond, Limit: 5, Sort: "mem"}, *got)
}

func TestSnapshotRejectsBadFlags(t *testing.T) {
	stubSeams(t, false)

	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"snapshot", "--sort", "user"}, io.Discard, &stderr))
	assert.Contains(t, stderr.String(), "invalid --sort")

	assert.Equal(t, 2, run([]string{"snapshot", "--interval", "0s"}, io.Discard, io.Discard))
	assert.Equal(t, 2, run([]string{"snapshot", "--bogus"}, io.Discard, io.Discard))
}

func TestWatchFlags(t *testing.T) {
	stubSeams(t, false)
	var got watchOptions
	runWatchFunc = func(o watchOptions, _ io.Writer) error {
		got = o
		return nil
	}

	require.Equal(t, 0, run([]string{"watch", "-c", "/tmp/w.yaml"}, io.Discard, io.Discard))
	assert.Equal(t, watchOptions{ConfigPath: "/tmp/w.yaml"}, got)
}
