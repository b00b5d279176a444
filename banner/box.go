package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BoxStyle defines Unicode box-drawing characters.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// RoundedBox uses rounded corner box-drawing characters.
var RoundedBox = BoxStyle{
	TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	Horizontal: '─', Vertical: '│',
}

// SharpBox uses sharp corner box-drawing characters.
var SharpBox = BoxStyle{
	TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	Horizontal: '─', Vertical: '│',
}

// RenderBox wraps content lines in a Unicode box with an optional styled
// title in the top border. Lines are padded or truncated to the box width,
// measured by display width so styled content lines up.
func RenderBox(lines []string, width int, title string, style BoxStyle, titleColor lipgloss.Color) string {
	if width < 4 {
		width = 80
	}
	innerWidth := width - 2

	var out strings.Builder

	out.WriteRune(style.TopLeft)
	if title != "" && len(title)+4 <= innerWidth {
		styled := lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(title)
		out.WriteRune(style.Horizontal)
		out.WriteString(" ")
		out.WriteString(styled)
		out.WriteString(" ")
		out.WriteString(strings.Repeat(string(style.Horizontal), innerWidth-len(title)-3))
	} else {
		out.WriteString(strings.Repeat(string(style.Horizontal), innerWidth))
	}
	out.WriteRune(style.TopRight)
	out.WriteString("\n")

	for _, line := range lines {
		out.WriteRune(style.Vertical)
		out.WriteString(" ")
		out.WriteString(padOrTruncate(line, innerWidth-2))
		out.WriteString(" ")
		out.WriteRune(style.Vertical)
		out.WriteString("\n")
	}

	out.WriteRune(style.BottomLeft)
	out.WriteString(strings.Repeat(string(style.Horizontal), innerWidth))
	out.WriteRune(style.BottomRight)

	return out.String()
}

// padOrTruncate fits a line to exactly width visible characters.
func padOrTruncate(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible > width {
		return truncateVisible(s, width)
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncateVisible cuts a string to at most width visible characters.
// ANSI escape sequences pass through uncounted.
func truncateVisible(s string, width int) string {
	if width <= 0 {
		return ""
	}

	var out strings.Builder
	visible := 0
	inEscape := false

	for _, r := range s {
		if inEscape {
			out.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '~' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			out.WriteRune(r)
			continue
		}
		if visible >= width {
			break
		}
		out.WriteRune(r)
		visible++
	}

	return out.String()
}
