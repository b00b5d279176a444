package dash

import (
	"fmt"
	"strings"
	"testing"

	"gitlab.com/nubitek/gatepulse/history"
)

func TestLineChart_UpdateReplacesSeries(t *testing.T) {
	buf := history.New(10)
	buf.Push(history.Sample{Label: "10:00:00", Value: 21.0})
	buf.Push(history.Sample{Label: "10:00:10", Value: 21.5})

	chart := NewLineChart()
	chart.Update(buf)

	if chart.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", chart.Len())
	}
	if chart.Labels()[0] != "10:00:00" || chart.Values()[1] != 21.5 {
		t.Errorf("unexpected series: labels=%v values=%v", chart.Labels(), chart.Values())
	}

	// A second update replaces the series wholesale.
	buf.Push(history.Sample{Label: "10:00:20", Value: 22.0})
	chart.Update(buf)

	if chart.Len() != 3 {
		t.Fatalf("expected 3 points after second update, got %d", chart.Len())
	}
}

func TestLineChart_WindowEvictionReachesChart(t *testing.T) {
	buf := history.New(10)
	chart := NewLineChart()

	// Thirteen refresh cycles against a ten-sample window.
	for i := 1; i <= 13; i++ {
		buf.Push(history.Sample{Label: fmt.Sprintf("t%d", i), Value: float64(i)})
		chart.Update(buf)
	}

	if chart.Len() != 10 {
		t.Fatalf("expected chart capped at 10 points, got %d", chart.Len())
	}
	if chart.Values()[0] != 4 || chart.Values()[9] != 13 {
		t.Errorf("expected values 4..13, got %v", chart.Values())
	}
	if chart.Labels()[0] != "t4" {
		t.Errorf("expected oldest label t4, got %q", chart.Labels()[0])
	}
}

func TestLineChart_UpdateCopiesWindow(t *testing.T) {
	buf := history.New(10)
	buf.Push(history.Sample{Label: "a", Value: 1})

	chart := NewLineChart()
	chart.Update(buf)

	// Later pushes must not leak into the chart until the next Update.
	buf.Push(history.Sample{Label: "b", Value: 2})

	if chart.Len() != 1 {
		t.Errorf("expected chart to keep its snapshot, got %d points", chart.Len())
	}
}

func TestLineChart_ViewEmpty(t *testing.T) {
	chart := NewLineChart()
	view := chart.View(40)
	if !strings.Contains(view, "waiting") {
		t.Errorf("expected placeholder for empty chart, got %q", view)
	}
}

func TestLineChart_ViewShowsTimeRange(t *testing.T) {
	buf := history.New(10)
	buf.Push(history.Sample{Label: "10:00:00", Value: 20})
	buf.Push(history.Sample{Label: "10:01:40", Value: 25})

	chart := NewLineChart()
	chart.Update(buf)

	view := chart.View(40)
	if !strings.Contains(view, "10:00:00") || !strings.Contains(view, "10:01:40") {
		t.Errorf("expected first and last labels in view, got %q", view)
	}
}

func TestGauge_UpdateSetsComplementarySeries(t *testing.T) {
	g := NewGauge()
	g.Update(60)

	series := g.Series()
	if series[0] != 60 || series[1] != 40 {
		t.Fatalf("expected series [60 40], got %v", series)
	}
}

func TestGauge_SeriesAlwaysSumsToHundred(t *testing.T) {
	g := NewGauge()
	for _, ratio := range []float64{0, 12.5, 50, 99.9, 100} {
		g.Update(ratio)
		series := g.Series()
		if sum := series[0] + series[1]; sum != 100 {
			t.Errorf("ratio %v: expected segments to sum to 100, got %v", ratio, sum)
		}
		if series[0] != ratio {
			t.Errorf("ratio %v: expected first segment to equal ratio, got %v", ratio, series[0])
		}
	}
}

func TestGauge_UpdateDoesNotClamp(t *testing.T) {
	g := NewGauge()
	g.Update(150)

	series := g.Series()
	if series[0] != 150 || series[1] != -50 {
		t.Errorf("expected unclamped series [150 -50], got %v", series)
	}
}

func TestGauge_ViewBeforeFirstReading(t *testing.T) {
	g := NewGauge()
	if g.Ready() {
		t.Fatal("expected new gauge to not be ready")
	}
	if !strings.Contains(g.View(20), "waiting") {
		t.Errorf("expected placeholder before first reading, got %q", g.View(20))
	}
}

func TestGauge_ViewShowsPercentage(t *testing.T) {
	g := NewGauge()
	g.Update(60)

	view := g.View(20)
	if !strings.Contains(view, "60%") {
		t.Errorf("expected 60%% in gauge view, got %q", view)
	}
	if !strings.Contains(view, "█") || !strings.Contains(view, "░") {
		t.Errorf("expected filled and rest segments in gauge view, got %q", view)
	}
}
