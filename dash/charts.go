package dash

import (
	"fmt"

	"gitlab.com/nubitek/gatepulse/history"
	"gitlab.com/nubitek/gatepulse/widgets"
)

// LineChart is the temperature trend chart. The model creates one handle
// at construction and mutates it in place on every refresh; the handle is
// never recreated.
type LineChart struct {
	labels []string
	values []float64
}

// NewLineChart returns an empty chart handle.
func NewLineChart() *LineChart {
	return &LineChart{}
}

// Update replaces the chart's label and value series wholesale with the
// current contents of the history window.
func (c *LineChart) Update(buf *history.Buffer) {
	c.labels = buf.Labels()
	c.values = buf.Values()
}

// Labels returns the current label series.
func (c *LineChart) Labels() []string {
	return c.labels
}

// Values returns the current value series.
func (c *LineChart) Values() []float64 {
	return c.values
}

// Len returns the number of points on the chart.
func (c *LineChart) Len() int {
	return len(c.values)
}

// View renders the chart as a sparkline with a time-range caption.
func (c *LineChart) View(width int) string {
	if len(c.values) == 0 {
		return styleMuted.Render("(waiting for readings)")
	}
	spark := widgets.RenderSparklineWithRange(c.values, width)
	if len(c.labels) == 0 {
		return spark
	}
	caption := c.labels[0]
	if len(c.labels) > 1 {
		caption = fmt.Sprintf("%s .. %s", c.labels[0], c.labels[len(c.labels)-1])
	}
	return spark + "\n" + styleMuted.Render(caption)
}

// Gauge is the humidity gauge. Like LineChart it is created once and
// updated in place. Its series always holds exactly two segments: the
// measured ratio and its complement to 100.
type Gauge struct {
	series [2]float64
	set    bool
}

// NewGauge returns an empty gauge handle.
func NewGauge() *Gauge {
	return &Gauge{}
}

// Update replaces the gauge series with [ratio, 100-ratio]. The ratio is
// not clamped; values outside 0-100 distort the rendered bar.
func (g *Gauge) Update(ratio float64) {
	g.series = [2]float64{ratio, 100 - ratio}
	g.set = true
}

// Series returns the current two-segment series.
func (g *Gauge) Series() [2]float64 {
	return g.series
}

// Ready reports whether the gauge has received at least one reading.
func (g *Gauge) Ready() bool {
	return g.set
}

// View renders the gauge as a split bar with a percentage caption.
func (g *Gauge) View(width int) string {
	if !g.set {
		return styleMuted.Render("(waiting for readings)")
	}
	cfg := widgets.DefaultSplitGaugeConfig()
	cfg.Series = g.series
	cfg.Width = width
	cfg.ShowValue = true
	return widgets.RenderSplitGauge(cfg)
}
