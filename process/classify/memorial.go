package classify

import (
	"fmt"
	"image"
	"log"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
)

// memorialsPerRow is how many members one grid row of a memorial screen holds;
// each member takes two cells.
const memorialsPerRow = 3

var variantField = [catalog.MemorialVariants]inventory.Field{inventory.Memorial, inventory.Memento}

// MemorialPass resolves the memorial and memento counts of one group.
type MemorialPass struct {
	engine    *Engine
	group     inventory.Group
	table     *inventory.Table
	remaining *candidates
	seen      map[string]*[catalog.MemorialVariants]bool
	rows      int
	shots     int
	hits      []Hit
}

// NewMemorialPass starts a pass over g with every member of g as a candidate.
func (e *Engine) NewMemorialPass(t *inventory.Table, g inventory.Group) *MemorialPass {
	members := t.Roster().Members(g)
	seen := make(map[string]*[catalog.MemorialVariants]bool, len(members))
	for _, n := range members {
		seen[n] = new([catalog.MemorialVariants]bool)
	}
	return &MemorialPass{
		engine:    e,
		group:     g,
		table:     t,
		remaining: newCandidates(members),
		seen:      seen,
		rows:      len(members) / memorialsPerRow,
	}
}

// Rows is the number of grid rows scanned per frame.
func (p *MemorialPass) Rows() int { return p.rows }

// Occurrences is how many of name's variants the pass has matched so far.
func (p *MemorialPass) Occurrences(name string) int {
	s, ok := p.seen[name]
	if !ok {
		return 0
	}
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

// Scan processes one memorial screenshot. A missing grid frame is fatal here.
func (p *MemorialPass) Scan(path string) error {
	f, err := p.engine.frame(path)
	if err != nil {
		return err
	}
	p.engine.Dumper.Save(cellName("memorial", path, 0, 0, "frame"), f.Image)
	return p.scanFrame(f, path)
}

// ScanFrame processes an already located frame.
func (p *MemorialPass) ScanFrame(f *grid.Frame) error {
	return p.scanFrame(f, "frame")
}

func (p *MemorialPass) scanFrame(f *grid.Frame, label string) error {
	p.shots++
	for row := 0; row < p.rows; row++ {
		for col := 0; col < p.engine.columns(); col++ {
			if p.remaining.len() == 0 {
				return nil
			}
			icon := f.IconRegion(col, row)
			name, variant, ok, err := p.matchCell(icon)
			if err != nil {
				return fmt.Errorf("%s cell r%dc%d: %w", label, row, col, err)
			}
			if !ok {
				continue
			}
			p.record(f, label, col, row, name, variant, icon)
		}
	}
	return nil
}

// matchCell tries each remaining member's unseen variants in index order, rather
// than only the variant at its occurrence count, so a memento met before its
// memorial still leaves the memorial matchable. The first template reaching the
// confidence wins the cell.
func (p *MemorialPass) matchCell(icon image.Image) (string, int, bool, error) {
	for _, name := range p.remaining.snapshot() {
		seen := p.seen[name]
		for v := 0; v < catalog.MemorialVariants; v++ {
			if seen[v] {
				continue
			}
			tpl, ok := p.engine.Catalog.Memorial(name, v)
			if !ok {
				continue
			}
			_, hit, err := p.engine.Matcher.Locate(tpl, icon, p.engine.MemorialConfidence, true)
			if err != nil {
				return "", 0, false, err
			}
			if hit {
				return name, v, true, nil
			}
		}
	}
	return "", 0, false, nil
}

func (p *MemorialPass) record(f *grid.Frame, label string, col, row int, name string, variant int, icon image.Image) {
	field := variantField[variant]
	countImg := f.CountRegion(col, row)
	p.engine.Dumper.Save(cellName("memorial", label, col, row, "icon"), icon)
	p.engine.Dumper.Save(cellName("memorial", label, col, row, "count"), countImg)

	count := p.engine.readCount(countImg, name, field)
	if rec, ok := p.table.Record(p.group, name); ok {
		rec.Set(field, count)
	}
	p.seen[name][variant] = true
	if p.Occurrences(name) == catalog.MemorialVariants {
		p.remaining.remove(name)
	}
	p.hits = append(p.hits, Hit{Col: col, Row: row, Name: name, Field: field, Count: count})
	log.Printf("memorial %s r%dc%d name=%s field=%s count=%s", p.group, row, col, name, field, count)
}

// Report lists the hits so far and every member still missing a variant.
func (p *MemorialPass) Report() Report {
	r := Report{
		Pass:        "memorial " + p.group.String(),
		Screenshots: p.shots,
		Hits:        append([]Hit(nil), p.hits...),
	}
	for _, name := range p.remaining.snapshot() {
		m := MissingMember{Group: p.group, Name: name}
		for v, ok := range p.seen[name] {
			if !ok {
				m.Missing = append(m.Missing, variantField[v])
			}
		}
		r.Missing = append(r.Missing, m)
	}
	return r
}

// RunMemorial scans every memorial screenshot of g in order.
func (e *Engine) RunMemorial(t *inventory.Table, g inventory.Group, paths []string) (Report, error) {
	p := e.NewMemorialPass(t, g)
	for _, path := range paths {
		log.Printf("processing memorial %s %s", g, path)
		if err := p.Scan(path); err != nil {
			return Report{}, fmt.Errorf("memorial pass %s: %w", g, err)
		}
	}
	r := p.Report()
	for _, m := range r.Missing {
		log.Printf("warning: %s member %s not found (missing %v)", g, m.Name, m.Missing)
	}
	return r, nil
}
