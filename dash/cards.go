package dash

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/nubitek/gatepulse/gateway"
	"gitlab.com/nubitek/gatepulse/internal/format"
)

// renderCards renders one card per sensor reading, in the order the
// gateway reported them. The grid is rebuilt wholesale from the snapshot
// on every refresh; nothing is diffed against the previous frame.
func renderCards(snap *gateway.SensorSnapshot, layout LayoutConfig) string {
	if snap == nil || snap.Len() == 0 {
		return styleMuted.Render("(no sensor data yet)")
	}
	cards := make([]string, 0, snap.Len())
	for _, r := range snap.Readings {
		cards = append(cards, renderCard(r, layout.CardWidth))
	}
	perRow := layout.CardsPerRow
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders a single labeled value card.
func renderCard(r gateway.Reading, width int) string {
	inner := width - 2
	if inner < 4 {
		inner = 4
	}
	title := styleCardTitle.Render(format.TruncateWithEllipsis(format.HumanizeKey(r.Key), inner))
	value := styleCardValue.Render(format.TruncateWithEllipsis(r.Value.String(), inner))
	return styleCard.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, value))
}
