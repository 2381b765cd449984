package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Preprocessing constants, tuned against the game's count font.
const (
	ContrastFactor = 2.0
	WidthScale     = 0.8
	BorderSize     = 20
)

// Preprocess prepares a held-count crop for single line recognition. The order of
// the steps matters: grayscale, invert, contrast, self-multiply, horizontal squeeze,
// border.
func Preprocess(img image.Image) *image.NRGBA {
	out := imaging.Grayscale(img)
	out = imaging.Invert(out)
	out = enhanceContrast(out, ContrastFactor)
	out = multiplySelf(out)

	w := int(float64(out.Bounds().Dx()) * WidthScale)
	if w < 1 {
		w = 1
	}
	out = imaging.Resize(out, w, out.Bounds().Dy(), imaging.CatmullRom)
	return addBorder(out, BorderSize, color.NRGBA{0, 0, 0, 255})
}

// enhanceContrast scales every channel's distance from the mean luminance by factor.
func enhanceContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	mean := meanLuminance(img)
	scale := func(v uint8) uint8 {
		return clamp(mean + factor*(float64(v)-mean))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
	})
}

// multiplySelf blends the image onto itself in multiply mode: light noise fades,
// dark strokes get darker.
func multiplySelf(img *image.NRGBA) *image.NRGBA {
	mul := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(v) / 255)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
	})
}

func addBorder(img *image.NRGBA, size int, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx()+2*size, b.Dy()+2*size, bg)
	return imaging.Paste(out, img, image.Pt(size, size))
}

func meanLuminance(img *image.NRGBA) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += float64(color.GrayModel.Convert(img.NRGBAAt(x, y)).(color.Gray).Y)
		}
	}
	// rounded like an integer histogram mean
	return float64(int(sum/float64(n) + 0.5))
}

func clamp(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v + 0.5)
}
