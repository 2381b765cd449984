// Package classify matches grid cells against the reference icons and fills the
// inventory table with the counts read next to them.
package classify

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match"
	"resourceocr/pkg/ocr"
)

// Default confidences of the two passes.
const (
	DefaultMemorialConfidence  = 0.93
	DefaultAutographConfidence = 0.90
	DefaultAutographRows       = 4
)

// Engine holds what both passes share. It carries no per-run state; each pass
// owns its candidate set.
type Engine struct {
	Locator             *grid.Locator
	Catalog             *catalog.Catalog
	Matcher             match.Matcher
	Reader              *ocr.CountReader
	MemorialConfidence  float64
	AutographConfidence float64
	AutographRows       int
	Dumper              *Dumper
}

// NewEngine wires the default confidences and layout.
func NewEngine(loc *grid.Locator, cat *catalog.Catalog, m match.Matcher, reader *ocr.CountReader) *Engine {
	return &Engine{
		Locator:             loc,
		Catalog:             cat,
		Matcher:             m,
		Reader:              reader,
		MemorialConfidence:  DefaultMemorialConfidence,
		AutographConfidence: DefaultAutographConfidence,
		AutographRows:       DefaultAutographRows,
	}
}

// Hit is one matched cell.
type Hit struct {
	Col, Row int
	Name     string
	Field    inventory.Field
	Count    inventory.Count
}

// MissingMember is a roster entry a pass never fully resolved.
type MissingMember struct {
	Group   inventory.Group
	Name    string
	Missing []inventory.Field
}

// Report summarizes one pass.
type Report struct {
	Pass        string
	Screenshots int
	Hits        []Hit
	Missing     []MissingMember
}

// frame opens path and cuts the grid frame out of it. The decoded screenshot is
// dropped as soon as the frame is cut.
func (e *Engine) frame(path string) (*grid.Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f, err := e.Locator.Locate(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// readCount never fails: anything but a number is stored as Unreadable.
func (e *Engine) readCount(img image.Image, who string, field inventory.Field) inventory.Count {
	n, err := e.Reader.ReadCount(img)
	if err == nil {
		return inventory.KnownCount(n)
	}
	if errors.Is(err, ocr.ErrUnreadable) {
		log.Printf("warning: %s %s unreadable: %v", who, field, err)
	} else {
		log.Printf("warning: %s %s recognizer failed: %v", who, field, err)
	}
	return inventory.UnreadableCount()
}

func (e *Engine) columns() int { return e.Locator.Geometry.Columns }
