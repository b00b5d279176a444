package format

import "strings"

// HumanizeKey turns a machine metric key into a card title: underscores and
// hyphens become spaces and the result is upper-cased, so "env_temperature"
// renders as "ENV TEMPERATURE". No other normalization is applied.
func HumanizeKey(key string) string {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return strings.ToUpper(title)
}

// TruncateWithEllipsis truncates a string to maxWidth characters, appending "..."
// if the string exceeds the limit. If maxWidth is less than 4, the string
// is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return string(runes[:maxWidth])
	}

	return string(runes[:maxWidth-3]) + "..."
}
