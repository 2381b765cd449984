// Package match finds a small reference image inside a larger one.
package match

import "image"

// Matcher locates needle within haystack. It reports the bounding rectangle of the
// best placement, in haystack coordinates, when its similarity reaches confidence.
// With useColor false only luminance is compared.
type Matcher interface {
	Locate(needle, haystack image.Image, confidence float64, useColor bool) (image.Rectangle, bool, error)
}
