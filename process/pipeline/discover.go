package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover returns the newest window files in dir matching pattern, newest first.
// Screenshot names embed their capture time, so lexical order is chronological.
func Discover(dir, pattern string, window int) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	if window > 0 && len(matches) > window {
		matches = matches[len(matches)-window:]
	}
	out := make([]string, len(matches))
	for i, p := range matches {
		out[len(matches)-1-i] = p
	}
	return out, nil
}
