// Package widgets provides pure render functions for the panel's terminal
// surfaces: the two-segment ratio gauge, the temperature sparkline, the
// device table, status dots and OSC 8 hyperlinks. Every function produces a
// string from its inputs and keeps no state; handles that persist between
// frames live with the caller.
package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SplitGaugeConfig controls a two-segment ratio bar. The panel uses it for
// humidity: the first segment is the measured ratio, the second the
// remainder to 100.
type SplitGaugeConfig struct {
	// Series is the two-segment split, typically [ratio, 100-ratio].
	Series [2]float64
	// Width is the total character width of the bar.
	Width int
	// Label is optional text shown to the left of the bar.
	Label string
	// ShowValue controls whether the first segment's value is shown after the bar.
	ShowValue bool
	// FillColor styles the first segment; RestColor the second.
	FillColor lipgloss.Color
	RestColor lipgloss.Color
}

// DefaultSplitGaugeConfig returns a SplitGaugeConfig with the panel's
// standard width and colors.
func DefaultSplitGaugeConfig() SplitGaugeConfig {
	return SplitGaugeConfig{
		Width:     20,
		ShowValue: true,
		FillColor: lipgloss.Color("#06B6D4"),
		RestColor: lipgloss.Color("#6B7280"),
	}
}

// RenderSplitGauge renders the two segments proportionally across Width.
// The series is taken exactly as given; values outside 0..100 produce a bar
// that visibly truncates or overflows its width rather than being corrected
// here. Range validation belongs to the caller.
func RenderSplitGauge(cfg SplitGaugeConfig) string {
	width := cfg.Width
	if width <= 0 {
		width = 20
	}

	fill := int(math.Round(cfg.Series[0] / 100.0 * float64(width)))
	rest := width - fill
	if fill < 0 {
		fill = 0
	}
	if rest < 0 {
		rest = 0
	}

	fillStyle := lipgloss.NewStyle().Foreground(cfg.FillColor)
	restStyle := lipgloss.NewStyle().Foreground(cfg.RestColor)

	bar := fillStyle.Render(strings.Repeat("█", fill)) +
		restStyle.Render(strings.Repeat("░", rest))

	var sb strings.Builder
	if cfg.Label != "" {
		sb.WriteString(cfg.Label)
		sb.WriteString(" ")
	}
	sb.WriteString(bar)
	if cfg.ShowValue {
		sb.WriteString(fmt.Sprintf(" %3.0f%%", cfg.Series[0]))
	}

	return sb.String()
}
