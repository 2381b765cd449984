package grid

import "image"

// Frame is the anchor-aligned crop of a screenshot holding exactly the grid.
type Frame struct {
	Image *image.NRGBA
	// Top is the anchor's vertical offset in the source screenshot.
	Top      int
	geometry Geometry
}

// NewFrame wraps an already aligned image, e.g. a saved frame dump.
func NewFrame(img image.Image, g Geometry) *Frame {
	return &Frame{Image: cropPadded(img, FromBounds(img.Bounds())), geometry: g}
}

// IconRegion is the icon of cell (col, row).
func (f *Frame) IconRegion(col, row int) image.Image {
	return cropPadded(f.Image, f.geometry.IconRect(col, row))
}

// CountRegion is the held-count overlay of cell (col, row).
func (f *Frame) CountRegion(col, row int) image.Image {
	return cropPadded(f.Image, f.geometry.CountRect(col, row))
}
