package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/model"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	sample := model.SystemSample{
		At:            time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local),
		CPUPercent:    12.34,
		MemoryPercent: 56.78,
	}
	host := model.HostInfo{Hostname: "box", Uptime: 26*time.Hour + 5*time.Minute, Load1: 0.5}

	err := Render(&buf, sampleRows, sample, host, 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "box  2024-05-01 12:30:00")
	assert.Contains(t, out, "CPU Usage: 12.3%  Memory Usage: 56.8%")
	assert.Contains(t, out, "Uptime: 1d 02:05:00")
	assert.Contains(t, out, "systemd")
	assert.Contains(t, out, "Google Chrome Helper")
	assert.NotContains(t, out, "bash")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, lines[len(lines)-1], "4.20")
}

func TestRenderNoLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRows, model.SystemSample{}, model.HostInfo{}, 0))
	assert.Contains(t, buf.String(), "kworker/0:1")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00:00:59", FormatUptime(59*time.Second))
	assert.Equal(t, "01:01:01", FormatUptime(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "2d 00:00:00", FormatUptime(48*time.Hour))
	assert.Equal(t, "00:00:00", FormatUptime(-time.Second))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "bash", truncate("bash", 28))
	assert.Equal(t, "Google...", truncate("Google Chrome Helper", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestRenderChartIsDeterministic(t *testing.T) {
	cpu := []float64{0, 10, 55, 100, 30}
	mem := []float64{20, 21, 22, 23, 24}

	a := renderChart(cpu, mem, 8, darkPalette)
	b := renderChart(cpu, mem, 8, darkPalette)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "100")
	assert.Contains(t, a, "CPU (red)")
	assert.Empty(t, renderChart(nil, nil, 8, darkPalette))
}
