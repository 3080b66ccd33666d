package model

import "time"

// DefaultHistory is the number of samples kept for each usage series.
const DefaultHistory = 60

// ProcessRow is one observed process. PID is the key across refreshes.
type ProcessRow struct {
	PID    int32
	Name   string
	CPU    float64
	Memory float64
}

// SystemSample is one system-wide usage reading.
type SystemSample struct {
	At            time.Time
	CPUPercent    float64
	MemoryPercent float64
}

type HostInfo struct {
	Hostname string
	Uptime   time.Duration
	Load1    float64
	Load5    float64
	Load15   float64
}
