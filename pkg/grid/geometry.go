// Package grid locates the resource grid inside a screenshot and cuts it into cells.
package grid

import "image"

// Rect is a position plus size. It doubles as static configuration and as the
// result of a locate call.
type Rect struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Bounds converts r into an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Offset shifts r by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// FromBounds converts an image.Rectangle back into a Rect.
func FromBounds(b image.Rectangle) Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Geometry holds every fixed pixel measurement of the grid layout.
type Geometry struct {
	// Cell is the size of one grid slot; X and Y are unused.
	Cell Rect `mapstructure:"cell"`
	// IconOffset and CountOffset are relative to a cell's origin.
	IconOffset  Rect `mapstructure:"icon_offset"`
	CountOffset Rect `mapstructure:"count_offset"`
	// AnchorBand is the smallest search window for the grid corner. Each entry of
	// AnchorHeights adds that many pixels to its height.
	AnchorBand    Rect  `mapstructure:"anchor_band"`
	AnchorHeights []int `mapstructure:"anchor_heights"`
	FrameOriginX  int   `mapstructure:"frame_origin_x"`
	FrameWidth    int   `mapstructure:"frame_width"`
	FrameHeight   int   `mapstructure:"frame_height"`
	Columns       int   `mapstructure:"columns"`
}

// DefaultGeometry matches a 1920x1080 emulator capture.
func DefaultGeometry() Geometry {
	return Geometry{
		Cell:          Rect{Width: 302, Height: 164},
		IconOffset:    Rect{X: 42, Y: 22, Width: 106, Height: 106},
		CountOffset:   Rect{X: 165, Y: 70, Width: 135, Height: 45},
		AnchorBand:    Rect{X: 38, Y: 0, Width: 322, Height: 330},
		AnchorHeights: []int{0, 30, 60},
		FrameOriginX:  38,
		FrameWidth:    1814,
		FrameHeight:   950,
		Columns:       6,
	}
}

// cellOrigin is the top-left corner of cell (col, row) inside a frame.
func (g Geometry) cellOrigin(col, row int) (int, int) {
	return col * g.Cell.Width, row * g.Cell.Height
}

// IconRect is the icon sub-region of cell (col, row) in frame coordinates.
func (g Geometry) IconRect(col, row int) Rect {
	x, y := g.cellOrigin(col, row)
	return g.IconOffset.Offset(x, y)
}

// CountRect is the held-count sub-region of cell (col, row) in frame coordinates.
func (g Geometry) CountRect(col, row int) Rect {
	x, y := g.cellOrigin(col, row)
	return g.CountOffset.Offset(x, y)
}

// SearchWindows returns the anchor search windows, smallest first.
func (g Geometry) SearchWindows() []Rect {
	out := make([]Rect, 0, len(g.AnchorHeights))
	for _, extra := range g.AnchorHeights {
		w := g.AnchorBand
		w.Height += extra
		out = append(out, w)
	}
	return out
}
