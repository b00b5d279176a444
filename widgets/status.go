package widgets

import "github.com/charmbracelet/lipgloss"

// StatusLevel represents the severity of a status indicator.
type StatusLevel int

const (
	// StatusOK indicates a healthy or connected state.
	StatusOK StatusLevel = iota
	// StatusWarning indicates a degraded or stale state.
	StatusWarning
	// StatusCritical indicates an error or lost link.
	StatusCritical
	// StatusUnknown indicates an indeterminate state.
	StatusUnknown
	// StatusPending indicates data that has not arrived yet.
	StatusPending
)

// StatusConfig holds the configuration for rendering a status indicator.
type StatusConfig struct {
	// Level determines the color and icon.
	Level StatusLevel
	// Text is the label shown next to the indicator.
	Text string
	// ShowIcon controls whether the colored dot is shown.
	ShowIcon bool
}

// statusIcons maps each status level to its display icon.
var statusIcons = map[StatusLevel]string{
	StatusOK:       "●",
	StatusWarning:  "●",
	StatusCritical: "●",
	StatusUnknown:  "○",
	StatusPending:  "◌",
}

// statusColors maps each status level to its display color.
var statusColors = map[StatusLevel]lipgloss.Color{
	StatusOK:       lipgloss.Color("#22C55E"),
	StatusWarning:  lipgloss.Color("#EAB308"),
	StatusCritical: lipgloss.Color("#EF4444"),
	StatusUnknown:  lipgloss.Color("#6B7280"),
	StatusPending:  lipgloss.Color("#3B82F6"),
}

// RenderStatus renders a status indicator with an optional colored icon and text.
func RenderStatus(cfg StatusConfig) string {
	style := lipgloss.NewStyle().Foreground(statusColors[cfg.Level])

	if cfg.ShowIcon {
		icon := style.Render(statusIcons[cfg.Level])
		if cfg.Text == "" {
			return icon
		}
		return icon + " " + cfg.Text
	}

	return style.Render(cfg.Text)
}
