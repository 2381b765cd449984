package grid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/match"
)

// DefaultAnchorConfidence is the similarity required for the corner image.
const DefaultAnchorConfidence = 0.95

// Locator finds the grid's top-left corner and cuts the working frame.
type Locator struct {
	Geometry   Geometry
	Anchor     image.Image
	Matcher    match.Matcher
	Confidence float64
}

// NewLocator returns a Locator using the default anchor confidence.
func NewLocator(g Geometry, anchor image.Image, m match.Matcher) *Locator {
	return &Locator{Geometry: g, Anchor: anchor, Matcher: m, Confidence: DefaultAnchorConfidence}
}

// Locate searches the windows smallest first and stops at the first hit: a larger
// window could also contain a similar corner further down the page.
func (l *Locator) Locate(shot image.Image) (*Frame, error) {
	origin := shot.Bounds().Min
	for i, win := range l.Geometry.SearchWindows() {
		band := imaging.Crop(shot, win.Bounds().Add(origin))
		r, ok, err := l.Matcher.Locate(l.Anchor, band, l.Confidence, false)
		if err != nil {
			return nil, fmt.Errorf("anchor window %d: %w", i, err)
		}
		if ok {
			return l.frameAt(shot, win.Y+r.Min.Y), nil
		}
	}
	return nil, ErrFrameNotFound
}

func (l *Locator) frameAt(shot image.Image, top int) *Frame {
	g := l.Geometry
	r := Rect{X: g.FrameOriginX, Y: top, Width: g.FrameWidth, Height: g.FrameHeight}
	return &Frame{
		Image:    cropPadded(shot, r.Offset(shot.Bounds().Min.X, shot.Bounds().Min.Y)),
		Top:      top,
		geometry: g,
	}
}

// cropPadded crops r out of img. Whatever lies outside img is filled black so the
// result always has r's size.
func cropPadded(img image.Image, r Rect) *image.NRGBA {
	want := r.Bounds()
	have := want.Intersect(img.Bounds())
	out := imaging.New(r.Width, r.Height, color.NRGBA{0, 0, 0, 255})
	if have.Empty() {
		return out
	}
	part := imaging.Crop(img, have)
	return imaging.Paste(out, part, have.Min.Sub(want.Min))
}
