// Package matchtest provides a pure Go Matcher and image fixtures for tests that
// should not depend on OpenCV.
package matchtest

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/match"
)

// Pixel is a brute force matcher scoring 1 - mean absolute difference / 255.
// Identical pixels score 1, so fixtures pasted verbatim always match.
type Pixel struct{}

func (Pixel) Locate(needle, haystack image.Image, confidence float64, useColor bool) (image.Rectangle, bool, error) {
	n := imaging.Clone(needle)
	h := imaging.Clone(haystack)
	nw, nh := n.Bounds().Dx(), n.Bounds().Dy()
	hw, hh := h.Bounds().Dx(), h.Bounds().Dy()
	if nw == 0 || nh == 0 || nw > hw || nh > hh {
		return image.Rectangle{}, false, nil
	}
	best, bx, by := -1.0, 0, 0
	for y := 0; y+nh <= hh; y++ {
		for x := 0; x+nw <= hw; x++ {
			s := score(n, h, x, y, useColor)
			if s > best {
				best, bx, by = s, x, y
			}
			if best == 1 {
				break
			}
		}
		if best == 1 {
			break
		}
	}
	if best < confidence {
		return image.Rectangle{}, false, nil
	}
	return image.Rect(bx, by, bx+nw, by+nh).Add(haystack.Bounds().Min), true, nil
}

func score(n, h *image.NRGBA, ox, oy int, useColor bool) float64 {
	nw, nh := n.Bounds().Dx(), n.Bounds().Dy()
	var diff, count float64
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			a := n.NRGBAAt(x, y)
			b := h.NRGBAAt(ox+x, oy+y)
			if useColor {
				diff += absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B)
				count += 3
				continue
			}
			diff += absDiff(luma(a), luma(b))
			count++
		}
	}
	return 1 - diff/(count*255)
}

func luma(c color.NRGBA) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

// Call is one recorded Locate invocation.
type Call struct {
	Needle   image.Image
	Haystack image.Rectangle
	Found    bool
}

// Recorder wraps a Matcher and keeps every call for assertions.
type Recorder struct {
	Next  match.Matcher
	Calls []Call
}

func (r *Recorder) Locate(needle, haystack image.Image, confidence float64, useColor bool) (image.Rectangle, bool, error) {
	rect, ok, err := r.Next.Locate(needle, haystack, confidence, useColor)
	r.Calls = append(r.Calls, Call{Needle: needle, Haystack: haystack.Bounds(), Found: ok})
	return rect, ok, err
}

// Pattern returns a w x h image of random opaque pixels. The same seed always yields
// the same image and different seeds are far apart under Pixel.
func Pattern(seed int64, w, h int) *image.NRGBA {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rnd.Intn(256)),
				G: uint8(rnd.Intn(256)),
				B: uint8(rnd.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}
