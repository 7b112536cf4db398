// Package text provides small text-processing helpers shared by the
// extraction and summarization layers.
package text

import "strings"

// Ellipsis is appended to text cut off by Truncate.
const Ellipsis = "…"

// CountRunes counts Unicode characters rather than bytes, so multi-byte
// article text is measured the same way a reader would.
func CountRunes(s string) int {
	return len([]rune(s))
}

// Truncate cuts s to at most limit runes, appending Ellipsis when anything
// was removed. A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + Ellipsis
}

// CollapseWhitespace replaces every run of whitespace (including newlines
// and tabs) with a single space and trims the result.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
