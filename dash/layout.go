package dash

import "strings"

// LayoutSize classifies the terminal width into layout tiers.
type LayoutSize int

const (
	LayoutCompact LayoutSize = iota // < 60 columns
	LayoutNormal                    // 60-120 columns
	LayoutWide                      // > 120 columns
)

// LayoutConfig holds size-dependent rendering parameters.
type LayoutConfig struct {
	GaugeWidth     int
	ChartWidth     int
	CardWidth      int
	CardsPerRow    int
	TableMaxWidth  int
	ContentPadding int
}

// DetectLayout returns the layout tier for a terminal width.
func DetectLayout(width int) LayoutSize {
	switch {
	case width < 60:
		return LayoutCompact
	case width <= 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// LayoutFor returns rendering parameters for the given terminal width.
func LayoutFor(width int) LayoutConfig {
	switch DetectLayout(width) {
	case LayoutCompact:
		return LayoutConfig{
			GaugeWidth:     10,
			ChartWidth:     width - 8,
			CardWidth:      18,
			CardsPerRow:    2,
			TableMaxWidth:  width - 4,
			ContentPadding: 1,
		}
	case LayoutWide:
		return LayoutConfig{
			GaugeWidth:     30,
			ChartWidth:     60,
			CardWidth:      24,
			CardsPerRow:    4,
			TableMaxWidth:  width - 12,
			ContentPadding: 3,
		}
	default:
		return LayoutConfig{
			GaugeWidth:     20,
			ChartWidth:     40,
			CardWidth:      22,
			CardsPerRow:    3,
			TableMaxWidth:  width - 8,
			ContentPadding: 2,
		}
	}
}

// sectionTitle renders a rule-flanked section heading.
func sectionTitle(title string, width int) string {
	if width < len(title)+8 {
		return styleSection.Render(title)
	}
	pad := (width - len(title) - 2) / 2
	line := strings.Repeat("─", pad)
	return styleSection.Render(line + " " + title + " " + line)
}
