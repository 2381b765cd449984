package classify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Dumper writes intermediate images for offline inspection. A nil Dumper or an
// empty Dir disables it. Failures are logged and never stop a pass.
type Dumper struct {
	Dir string
}

func (d *Dumper) enabled() bool { return d != nil && d.Dir != "" }

// Save writes img as <Dir>/<name>.png.
func (d *Dumper) Save(name string, img image.Image) {
	if !d.enabled() {
		return
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		log.Printf("dump mkdir %s: %v", d.Dir, err)
		return
	}
	p := filepath.Join(d.Dir, name+".png")
	if err := imaging.Save(img, p); err != nil {
		log.Printf("dump %s: %v", p, err)
	}
}

func cellName(prefix, shot string, col, row int, kind string) string {
	base := filepath.Base(shot)
	base = base[:len(base)-len(filepath.Ext(base))]
	return fmt.Sprintf("%s_%s_r%dc%d_%s", prefix, base, row, col, kind)
}
