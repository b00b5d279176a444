package widgets

import "fmt"

// RenderHyperlink returns text wrapped in an OSC 8 hyperlink escape sequence.
// Terminals that support OSC 8 (Ghostty, iTerm2, Kitty, WezTerm) render the
// text as a clickable link; others display the text with no artifacts.
func RenderHyperlink(url, text string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}
