package ui

import (
	"fmt"
	"io"
	"time"

	"pulse/model"
)

// Render writes a plain-text process table, used by the snapshot command.
// limit <= 0 prints every row.
func Render(w io.Writer, rows []model.ProcessRow, sample model.SystemSample, host model.HostInfo, limit int) error {
	ew := &errWriter{w: w}

	ew.printf("%s  %s\n", host.Hostname, sample.At.Format(time.DateTime))
	ew.printf("CPU Usage: %.1f%%  Memory Usage: %.1f%%\n", sample.CPUPercent, sample.MemoryPercent)
	ew.printf("Load average: %.2f %.2f %.2f | Uptime: %s\n",
		host.Load1, host.Load5, host.Load15, FormatUptime(host.Uptime))
	ew.printf("\n%7s  %-28s %6s %7s\n", "PID", "NAME", "CPU%", "MEM%")

	for i, r := range rows {
		if limit > 0 && i >= limit {
			break
		}
		ew.printf("%7d  %-28s %6s %7s\n",
			r.PID,
			truncate(r.Name, 28),
			formatCPU(r.CPU),
			formatMemory(r.Memory),
		)
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
