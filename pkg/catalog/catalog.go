// Package catalog holds the reference icons every pass matches against.
package catalog

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/inventory"
)

// ErrTemplateMissing is returned when a reference icon file does not exist.
var ErrTemplateMissing = errors.New("reference template missing")

// MemorialVariants is the number of memorial templates per member: the memorial
// itself (0) and the memento (1).
const MemorialVariants = 2

// Catalog is read-only after Load.
type Catalog struct {
	anchor    image.Image
	memorial  map[string][MemorialVariants]image.Image
	autograph map[string]image.Image
}

// New assembles a catalog from in-memory images.
func New(anchor image.Image, memorial map[string][MemorialVariants]image.Image, autograph map[string]image.Image) *Catalog {
	return &Catalog{anchor: anchor, memorial: memorial, autograph: autograph}
}

// Load reads the icon directory:
//
//	cell_corner.png
//	memorial_<name>_<variant>.png
//	autograph/autograph_<name>.png
func Load(dir string, roster *inventory.Roster) (*Catalog, error) {
	anchor, err := open(filepath.Join(dir, "cell_corner.png"))
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		anchor:    anchor,
		memorial:  map[string][MemorialVariants]image.Image{},
		autograph: map[string]image.Image{},
	}
	for _, name := range roster.All() {
		var variants [MemorialVariants]image.Image
		for v := 0; v < MemorialVariants; v++ {
			img, err := open(filepath.Join(dir, fmt.Sprintf("memorial_%s_%d.png", name, v)))
			if err != nil {
				return nil, err
			}
			variants[v] = img
		}
		c.memorial[name] = variants
		img, err := open(filepath.Join(dir, "autograph", fmt.Sprintf("autograph_%s.png", name)))
		if err != nil {
			return nil, err
		}
		c.autograph[name] = img
	}
	return c, nil
}

func open(path string) (image.Image, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	return img, nil
}

// Anchor is the grid corner image.
func (c *Catalog) Anchor() image.Image { return c.anchor }

// Memorial returns variant v of name's memorial icon.
func (c *Catalog) Memorial(name string, v int) (image.Image, bool) {
	variants, ok := c.memorial[name]
	if !ok || v < 0 || v >= MemorialVariants || variants[v] == nil {
		return nil, false
	}
	return variants[v], true
}

// Autograph returns name's autograph icon.
func (c *Catalog) Autograph(name string) (image.Image, bool) {
	img, ok := c.autograph[name]
	return img, ok && img != nil
}
