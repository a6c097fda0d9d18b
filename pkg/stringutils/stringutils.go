package stringutils

import "strings"

// LeftJust pads text on the right with filler until it is at least size runes long.
func LeftJust(text string, filler string, size int) string {
	repeat := size - len([]rune(text))
	if repeat <= 0 || filler == "" {
		return text
	}

	return text + strings.Repeat(filler, repeat)
}

// Quote wraps text in double quotes without escaping its contents.
func Quote(text string) string {
	return `"` + text + `"`
}
