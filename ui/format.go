package ui

import (
	"fmt"
	"time"
)

func formatCPU(v float64) string { return fmt.Sprintf("%.1f", v) }

// formatMemory keeps two decimals so small resident sets stay visible.
func formatMemory(v float64) string { return fmt.Sprintf("%.2f", v) }

// FormatUptime renders d as "3d 04:05:06", dropping the day part when zero.
func FormatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	days := total / 86400
	h := (total % 86400) / 3600
	m := (total % 3600) / 60
	s := total % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
