package ocr

import "unicode/utf8"

// snippet returns a shortened version of text for logging. The cut never splits
// a rune.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "…"
}
