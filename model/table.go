package model

// ProcessTable is the displayed process list: rows in display order plus an
// index from pid to position.
type ProcessTable struct {
	rows  []ProcessRow
	index map[int32]int
}

func NewProcessTable() *ProcessTable {
	return &ProcessTable{index: make(map[int32]int)}
}

// Reconcile brings the table in line with a fresh observation without
// tearing it down. Rows whose pid persists are updated where they stand,
// rows whose pid vanished are dropped, and unseen pids are appended in the
// order they were observed. It reports how many rows were added, updated
// and removed.
func (t *ProcessTable) Reconcile(observed []ProcessRow) (added, updated, removed int) {
	fresh := make(map[int32]ProcessRow, len(observed))
	for _, r := range observed {
		fresh[r.PID] = r
	}

	kept := t.rows[:0]
	for _, cur := range t.rows {
		next, ok := fresh[cur.PID]
		if !ok {
			removed++
			continue
		}
		kept = append(kept, next)
		delete(fresh, cur.PID)
		updated++
	}

	for _, r := range observed {
		next, ok := fresh[r.PID]
		if !ok {
			continue
		}
		kept = append(kept, next)
		delete(fresh, r.PID)
		added++
	}

	t.rows = kept
	t.reindex()
	return added, updated, removed
}

// Replace discards the current rows and rebuilds from the observation.
func (t *ProcessTable) Replace(observed []ProcessRow) {
	t.rows = t.rows[:0]
	seen := make(map[int32]bool, len(observed))
	for _, r := range observed {
		if seen[r.PID] {
			continue
		}
		seen[r.PID] = true
		t.rows = append(t.rows, r)
	}
	t.reindex()
}

// Remove drops the row for pid and reports whether it was present.
func (t *ProcessTable) Remove(pid int32) bool {
	i, ok := t.index[pid]
	if !ok {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	t.reindex()
	return true
}

// Index returns the display position of pid, or -1.
func (t *ProcessTable) Index(pid int32) int {
	if i, ok := t.index[pid]; ok {
		return i
	}
	return -1
}

func (t *ProcessTable) Row(i int) (ProcessRow, bool) {
	if i < 0 || i >= len(t.rows) {
		return ProcessRow{}, false
	}
	return t.rows[i], true
}

// Rows returns the rows in display order. The slice is shared; callers must
// not modify it.
func (t *ProcessTable) Rows() []ProcessRow { return t.rows }

func (t *ProcessTable) Len() int { return len(t.rows) }

func (t *ProcessTable) reindex() {
	clear(t.index)
	for i, r := range t.rows {
		t.index[r.PID] = i
	}
}
