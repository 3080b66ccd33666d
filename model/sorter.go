package model

import (
	"sort"
	"strconv"
	"strings"
)

type SortColumn int

const (
	SortNone SortColumn = iota
	SortByCPU
	SortByMemory
	SortByPID
	SortByName
)

var columnNames = map[SortColumn]string{
	SortNone:     "-",
	SortByCPU:    "CPU",
	SortByMemory: "MEM",
	SortByPID:    "PID",
	SortByName:   "NAME",
}

func (c SortColumn) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "?"
}

// ParseSortColumn maps a flag value such as "cpu" or "pid" to a column.
func ParseSortColumn(s string) (SortColumn, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return SortByCPU, true
	case "mem", "memory":
		return SortByMemory, true
	case "pid":
		return SortByPID, true
	case "name":
		return SortByName, true
	case "", "none":
		return SortNone, true
	}
	return SortNone, false
}

// Descending reports the natural direction of a column: usage columns put
// the heaviest first, identity columns sort ascending.
func (c SortColumn) Descending() bool {
	return c == SortByCPU || c == SortByMemory
}

// Sort orders rows by column in place. The sort is stable, so sorting rows
// that are already in order leaves them untouched.
func Sort(rows []ProcessRow, col SortColumn) {
	if col == SortNone {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		switch col {
		case SortByCPU:
			return a.CPU > b.CPU
		case SortByMemory:
			return a.Memory > b.Memory
		case SortByPID:
			return a.PID < b.PID
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
		return false
	})
}

// SortBy reorders the table once. Later reconciles do not re-apply it.
func (t *ProcessTable) SortBy(col SortColumn) {
	Sort(t.rows, col)
	t.reindex()
}

// Find returns the position of the first row, in display order, whose pid
// equals term exactly or whose name contains term case-insensitively.
// It returns -1 when nothing matches.
func (t *ProcessTable) Find(term string) int {
	term = strings.TrimSpace(term)
	if term == "" {
		return -1
	}
	needle := strings.ToLower(term)
	for i, r := range t.rows {
		if strconv.Itoa(int(r.PID)) == term || strings.Contains(strings.ToLower(r.Name), needle) {
			return i
		}
	}
	return -1
}
