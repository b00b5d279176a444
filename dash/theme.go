package dash

import "github.com/charmbracelet/lipgloss"

// Color palette for the panel theme.
const (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#EAB308") // Yellow
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

// Styles used throughout the panel.
var (
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleFooter      lipgloss.Style
	styleContent     lipgloss.Style
	styleSection     lipgloss.Style
	styleCard        lipgloss.Style
	styleCardTitle   lipgloss.Style
	styleCardValue   lipgloss.Style
	styleError       lipgloss.Style
	styleMuted       lipgloss.Style
)

func init() {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted).
		MarginBottom(1)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	styleContent = lipgloss.NewStyle().
		Padding(0, 2)

	styleSection = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1)

	styleCardTitle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	styleCardValue = lipgloss.NewStyle().
		Bold(true)

	styleError = lipgloss.NewStyle().
		Foreground(colorDanger)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)
}
