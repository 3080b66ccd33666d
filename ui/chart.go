package ui

import (
	"github.com/guptarohit/asciigraph"
)

// renderChart plots the CPU and memory windows on a fixed 0..100 axis. The
// x axis is one column per sample, so the output depends only on its inputs.
func renderChart(cpu, mem []float64, height int, p Palette) string {
	if len(cpu) == 0 && len(mem) == 0 {
		return ""
	}
	cpuColor, memColor := asciigraph.Red, asciigraph.Blue
	axis := asciigraph.Default
	if p.Name == lightPalette.Name {
		cpuColor, memColor = asciigraph.DarkRed, asciigraph.DarkBlue
		axis = asciigraph.Black
	}

	return asciigraph.PlotMany(
		[][]float64{cpu, mem},
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(cpuColor, memColor),
		asciigraph.AxisColor(axis),
		asciigraph.LabelColor(axis),
		asciigraph.Caption("CPU (red) / Memory (blue), last samples"),
	)
}
