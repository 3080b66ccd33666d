package monitor

import (
	"context"

	"pulse/ui"
)

type windowSource interface {
	Windows() (cpu, mem []float64)
}

// ChartUpdater posts copies of the usage windows for the chart.
type ChartUpdater struct {
	source windowSource
	sink   Sink
}

func NewChartUpdater(source windowSource, sink Sink) *ChartUpdater {
	return &ChartUpdater{source: source, sink: sink}
}

func (c *ChartUpdater) Update(context.Context) error {
	cpu, mem := c.source.Windows()
	c.sink.Send(ui.ChartMsg{CPU: cpu, Memory: mem})
	return nil
}
