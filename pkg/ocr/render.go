package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderCount draws text the way the game shows counts, light glyphs on a dark
// background, enlarged by scale. Used to check the recognizer end to end.
func RenderCount(text string, scale int) *image.NRGBA {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil() + 4
	h := face.Height + 4

	img := imaging.New(w, h, color.NRGBA{40, 32, 48, 255})
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{250, 250, 250, 255}),
		Face: face,
		Dot:  fixed.P(2, 2+face.Ascent),
	}
	d.DrawString(text)
	if scale <= 1 {
		return img
	}
	return imaging.Resize(img, w*scale, h*scale, imaging.Linear)
}
