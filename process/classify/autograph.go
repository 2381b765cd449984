package classify

import (
	"fmt"
	"image"
	"log"

	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
)

// AutographPass resolves the autograph count of every roster member across all
// groups at once.
type AutographPass struct {
	engine    *Engine
	table     *inventory.Table
	remaining *candidates
	shots     int
	hits      []Hit
}

func (e *Engine) NewAutographPass(t *inventory.Table) *AutographPass {
	return &AutographPass{engine: e, table: t, remaining: newCandidates(t.Roster().All())}
}

// Scan processes one autograph screenshot. A missing grid frame is fatal here.
func (p *AutographPass) Scan(path string) error {
	f, err := p.engine.frame(path)
	if err != nil {
		return err
	}
	p.engine.Dumper.Save(cellName("autograph", path, 0, 0, "frame"), f.Image)
	return p.scanFrame(f, path)
}

// ScanFrame processes an already located frame.
func (p *AutographPass) ScanFrame(f *grid.Frame) error {
	return p.scanFrame(f, "frame")
}

func (p *AutographPass) scanFrame(f *grid.Frame, label string) error {
	p.shots++
	for row := 0; row < p.engine.AutographRows; row++ {
		for col := 0; col < p.engine.columns(); col++ {
			if p.remaining.len() == 0 {
				return nil
			}
			icon := f.IconRegion(col, row)
			name, ok, err := p.matchCell(icon)
			if err != nil {
				return fmt.Errorf("%s cell r%dc%d: %w", label, row, col, err)
			}
			if !ok {
				continue
			}
			countImg := f.CountRegion(col, row)
			p.engine.Dumper.Save(cellName("autograph", label, col, row, "icon"), icon)
			p.engine.Dumper.Save(cellName("autograph", label, col, row, "count"), countImg)

			count := p.engine.readCount(countImg, name, inventory.Autograph)
			if _, rec, ok := p.table.Lookup(name); ok {
				rec.Set(inventory.Autograph, count)
			}
			p.remaining.remove(name)
			p.hits = append(p.hits, Hit{Col: col, Row: row, Name: name, Field: inventory.Autograph, Count: count})
			log.Printf("autograph r%dc%d name=%s count=%s", row, col, name, count)
		}
	}
	return nil
}

func (p *AutographPass) matchCell(icon image.Image) (string, bool, error) {
	for _, name := range p.remaining.snapshot() {
		tpl, ok := p.engine.Catalog.Autograph(name)
		if !ok {
			continue
		}
		_, hit, err := p.engine.Matcher.Locate(tpl, icon, p.engine.AutographConfidence, true)
		if err != nil {
			return "", false, err
		}
		if hit {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (p *AutographPass) Report() Report {
	r := Report{Pass: "autograph", Screenshots: p.shots, Hits: append([]Hit(nil), p.hits...)}
	for _, name := range p.remaining.snapshot() {
		g, _ := p.table.Roster().GroupOf(name)
		r.Missing = append(r.Missing, MissingMember{Group: g, Name: name, Missing: []inventory.Field{inventory.Autograph}})
	}
	return r
}

// RunAutograph scans every autograph screenshot in order.
func (e *Engine) RunAutograph(t *inventory.Table, paths []string) (Report, error) {
	p := e.NewAutographPass(t)
	for _, path := range paths {
		log.Printf("processing autograph %s", path)
		if err := p.Scan(path); err != nil {
			return Report{}, fmt.Errorf("autograph pass: %w", err)
		}
	}
	r := p.Report()
	for _, m := range r.Missing {
		log.Printf("warning: %s member %s has no autograph", m.Group, m.Name)
	}
	return r, nil
}
