package ocr

import (
	"fmt"
	"strconv"
	"strings"
)

var separators = strings.NewReplacer(",", "", ".", "", " ", "")

// ParseCount normalizes recognized text into a count: surrounding whitespace and
// thousands separators (comma, dot or space) are dropped, what remains must be digits only.
func ParseCount(text string) (int, error) {
	s := separators.Replace(strings.TrimSpace(text))
	if s == "" || onlyDigits(s) != s {
		return 0, fmt.Errorf("%w: %q", ErrUnreadable, text)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnreadable, text, err)
	}
	return n, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
