package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/config"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match/matchtest"
	"resourceocr/process/screening"
)

func TestDiscoverKeepsNewestWindow(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 20; i++ {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("Screenshot_%02d.png", i)), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Discover(dir, "Screenshot_*.png", 15)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 15 {
		t.Fatalf("expected 15 got %d", len(got))
	}
	if filepath.Base(got[0]) != "Screenshot_20.png" || filepath.Base(got[14]) != "Screenshot_06.png" {
		t.Fatalf("expected newest first window got %s .. %s", got[0], got[14])
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.ScreenshotDir = dir
	cfg.Geometry = grid.Geometry{
		Cell:          grid.Rect{Width: 20, Height: 16},
		IconOffset:    grid.Rect{X: 2, Y: 2, Width: 8, Height: 8},
		CountOffset:   grid.Rect{X: 11, Y: 4, Width: 8, Height: 6},
		AnchorBand:    grid.Rect{X: 4, Y: 0, Width: 30, Height: 20},
		AnchorHeights: []int{0, 10, 20},
		FrameOriginX:  4,
		FrameWidth:    120,
		FrameHeight:   64,
		Columns:       6,
	}
	return &cfg
}

type constRecognizer string

func (c constRecognizer) RecognizeLine(image.Image) (string, error) { return string(c), nil }

type scene struct {
	cfg    *config.Config
	roster *inventory.Roster
	cat    *catalog.Catalog
	anchor image.Image
}

func newScene(t *testing.T) *scene {
	t.Helper()
	r, err := inventory.NewRoster(map[inventory.Group][]string{
		inventory.Muse:       {"Honoka", "Umi", "Kotori"},
		inventory.Aqours:     {"Chika", "You", "Riko"},
		inventory.Nijigasaki: {"Ayumu", "Setsuna", "Ai"},
	})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	memorial := map[string][catalog.MemorialVariants]image.Image{}
	autograph := map[string]image.Image{}
	for i, n := range r.All() {
		seed := int64(300 + 10*i)
		memorial[n] = [catalog.MemorialVariants]image.Image{matchtest.Pattern(seed, 8, 8), matchtest.Pattern(seed+1, 8, 8)}
		autograph[n] = matchtest.Pattern(seed+2, 8, 8)
	}
	anchor := matchtest.Pattern(3, 6, 6)
	return &scene{cfg: testConfig(t.TempDir()), roster: r, cat: catalog.New(anchor, memorial, autograph), anchor: anchor}
}

// write saves a screenshot whose grid shows icons in reading order.
func (s *scene) write(t *testing.T, name string, icons []image.Image) {
	t.Helper()
	g := s.cfg.Geometry
	frame := imaging.New(g.FrameWidth, g.FrameHeight, color.NRGBA{0, 0, 0, 255})
	for i, icon := range icons {
		r := g.IconRect(i%g.Columns, i/g.Columns)
		frame = imaging.Paste(frame, icon, image.Pt(r.X, r.Y))
	}
	shot := imaging.New(140, 100, color.NRGBA{0, 0, 0, 255})
	shot = imaging.Paste(shot, frame, image.Pt(g.FrameOriginX, 5))
	shot = imaging.Paste(shot, s.anchor, image.Pt(20, 5))
	if err := imaging.Save(shot, filepath.Join(s.cfg.ScreenshotDir, name)); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func (s *scene) memorialIcons(g inventory.Group) []image.Image {
	var out []image.Image
	for _, n := range s.roster.Members(g) {
		for v := 0; v < catalog.MemorialVariants; v++ {
			img, _ := s.cat.Memorial(n, v)
			out = append(out, img)
		}
	}
	return out
}

// writeFullSet saves one memorial screenshot per group and one autograph screenshot.
func (s *scene) writeFullSet(t *testing.T) {
	t.Helper()
	s.write(t, "Screenshot_01.png", s.memorialIcons(inventory.Muse))
	s.write(t, "Screenshot_02.png", s.memorialIcons(inventory.Aqours))
	s.write(t, "Screenshot_03.png", s.memorialIcons(inventory.Nijigasaki))
	var autographs []image.Image
	for _, n := range s.roster.All() {
		img, _ := s.cat.Autograph(n)
		autographs = append(autographs, img)
	}
	s.write(t, "Screenshot_04.png", autographs)
}

func TestRunFillsTable(t *testing.T) {
	s := newScene(t)
	s.writeFullSet(t)

	p := New(s.cfg, s.roster, s.cat, matchtest.Pixel{}, constRecognizer("1,024"))
	res, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Missing()) != 0 {
		t.Fatalf("expected no missing members got %+v", res.Missing())
	}
	for _, row := range res.Table.Rows() {
		for _, f := range []inventory.Field{inventory.Memorial, inventory.Memento, inventory.Autograph} {
			if v, ok := row.Record.Get(f).Get(); !ok || v != 1024 {
				t.Fatalf("%s %s: expected 1024 got %v", row.Name, f, row.Record.Get(f))
			}
		}
	}
	if len(res.Memorials) != 3 || res.Autograph.Screenshots != 1 {
		t.Fatalf("unexpected reports %+v", res)
	}
}

func TestRunInsufficientInput(t *testing.T) {
	s := newScene(t)
	s.write(t, "Screenshot_01.png", s.memorialIcons(inventory.Muse))
	p := New(s.cfg, s.roster, s.cat, matchtest.Pixel{}, constRecognizer("1"))
	res, err := p.Run(context.Background())
	if !errors.Is(err, screening.ErrInsufficientInput) {
		t.Fatalf("expected ErrInsufficientInput got %v", err)
	}
	if res == nil || res.Triage == nil || len(res.Triage.Memorials[inventory.Muse]) != 1 {
		t.Fatalf("partial result should carry the triage")
	}
	if _, ok := res.Table.Record(inventory.Muse, "Umi"); !ok {
		t.Fatalf("table should be pre-populated")
	}
}

func TestRunWritesDebugImages(t *testing.T) {
	s := newScene(t)
	s.writeFullSet(t)
	s.cfg.DebugDir = t.TempDir()

	p := New(s.cfg, s.roster, s.cat, matchtest.Pixel{}, constRecognizer("7"))
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	// one preprocessed image per count read: 9 memorials, 9 mementos, 9 autographs
	pre, err := filepath.Glob(filepath.Join(s.cfg.DebugDir, "preprocessed_*.png"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(pre) != 27 {
		t.Fatalf("expected 27 preprocessed images got %d", len(pre))
	}
	img, err := imaging.Open(pre[0])
	if err != nil {
		t.Fatalf("open %s: %v", pre[0], err)
	}
	// count crop is 8x6; preprocessing squeezes to 6 wide and adds the border
	if b := img.Bounds(); b.Dx() != 6+2*20 || b.Dy() != 6+2*20 {
		t.Fatalf("dumped image is not the preprocessed one: %v", b)
	}
	frames, _ := filepath.Glob(filepath.Join(s.cfg.DebugDir, "*_frame.png"))
	if len(frames) != 4 {
		t.Fatalf("expected 4 frame dumps got %d", len(frames))
	}
}
