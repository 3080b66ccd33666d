package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(pids ...int32) []ProcessRow {
	out := make([]ProcessRow, 0, len(pids))
	for _, pid := range pids {
		out = append(out, ProcessRow{PID: pid, Name: "p"})
	}
	return out
}

func pidsOf(t *ProcessTable) []int32 {
	out := make([]int32, 0, t.Len())
	for _, r := range t.Rows() {
		out = append(out, r.PID)
	}
	return out
}

func TestReconcileFromEmptyInsertsInObservedOrder(t *testing.T) {
	tbl := NewProcessTable()
	added, updated, removed := tbl.Reconcile(rows(30, 10, 20))

	assert.Equal(t, []int32{30, 10, 20}, pidsOf(tbl))
	assert.Equal(t, 3, added)
	assert.Zero(t, updated)
	assert.Zero(t, removed)
}

func TestReconcileUpdatesInPlaceAndPreservesPositions(t *testing.T) {
	tbl := NewProcessTable()
	tbl.Reconcile([]ProcessRow{
		{PID: 1, Name: "init", CPU: 0.1},
		{PID: 2, Name: "sshd", CPU: 0.2},
		{PID: 3, Name: "bash", CPU: 0.3},
	})
	before := tbl.Index(2)

	added, updated, removed := tbl.Reconcile([]ProcessRow{
		{PID: 3, Name: "bash", CPU: 9.5},
		{PID: 4, Name: "vim", CPU: 1.0},
		{PID: 2, Name: "sshd", CPU: 4.0, Memory: 1.25},
	})

	assert.Equal(t, []int32{2, 3, 4}, pidsOf(tbl))
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, updated)
	assert.Equal(t, 1, removed)

	row, ok := tbl.Row(tbl.Index(2))
	require.True(t, ok)
	assert.Equal(t, 4.0, row.CPU)
	assert.Equal(t, 1.25, row.Memory)
	// pid 1 vanished ahead of pid 2, so pid 2 moves up by exactly one slot
	assert.Equal(t, before-1, tbl.Index(2))
}

func TestReconcilePIDSetMatchesObservation(t *testing.T) {
	tbl := NewProcessTable()
	tbl.Reconcile(rows(1, 2, 3, 4, 5))
	tbl.Reconcile(rows(5, 6, 2))

	var got []int32
	for _, r := range tbl.Rows() {
		got = append(got, r.PID)
	}
	assert.ElementsMatch(t, []int32{2, 5, 6}, got)
	assert.Equal(t, -1, tbl.Index(1))
}

func TestReconcileDropsDuplicatePIDs(t *testing.T) {
	tbl := NewProcessTable()
	tbl.Reconcile(rows(7, 7, 8))
	assert.Equal(t, []int32{7, 8}, pidsOf(tbl))
}

func TestReplaceRebuildsInObservedOrder(t *testing.T) {
	tbl := NewProcessTable()
	tbl.Reconcile(rows(1, 2, 3))
	tbl.Replace(rows(3, 9, 1))

	assert.Equal(t, []int32{3, 9, 1}, pidsOf(tbl))
	assert.Equal(t, 1, tbl.Index(9))
}

func TestRemove(t *testing.T) {
	tbl := NewProcessTable()
	tbl.Reconcile(rows(1, 2, 3))

	assert.True(t, tbl.Remove(2))
	assert.False(t, tbl.Remove(2))
	assert.Equal(t, []int32{1, 3}, pidsOf(tbl))
	assert.Equal(t, 1, tbl.Index(3))
}

func TestRowOutOfRange(t *testing.T) {
	tbl := NewProcessTable()
	_, ok := tbl.Row(0)
	assert.False(t, ok)
	_, ok = tbl.Row(-1)
	assert.False(t, ok)
}
