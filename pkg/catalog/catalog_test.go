package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match/matchtest"
)

func smallRoster(t *testing.T) *inventory.Roster {
	t.Helper()
	r, err := inventory.NewRoster(map[inventory.Group][]string{
		inventory.Muse:       {"Umi"},
		inventory.Aqours:     {"Riko"},
		inventory.Nijigasaki: {"Ai"},
	})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	return r
}

func writeIcons(t *testing.T, dir string, names []string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "autograph"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	save := func(p string, seed int64) {
		if err := imaging.Save(matchtest.Pattern(seed, 4, 4), p); err != nil {
			t.Fatalf("save %s: %v", p, err)
		}
	}
	save(filepath.Join(dir, "cell_corner.png"), 1)
	for i, n := range names {
		save(filepath.Join(dir, fmt.Sprintf("memorial_%s_0.png", n)), int64(10+i))
		save(filepath.Join(dir, fmt.Sprintf("memorial_%s_1.png", n)), int64(20+i))
		save(filepath.Join(dir, "autograph", fmt.Sprintf("autograph_%s.png", n)), int64(30+i))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeIcons(t, dir, []string{"Umi", "Riko", "Ai"})
	c, err := Load(dir, smallRoster(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Anchor() == nil {
		t.Fatalf("anchor not loaded")
	}
	if _, ok := c.Memorial("Riko", 1); !ok {
		t.Fatalf("memento variant missing")
	}
	if _, ok := c.Memorial("Riko", 2); ok {
		t.Fatalf("variant 2 should not exist")
	}
	if _, ok := c.Autograph("Ai"); !ok {
		t.Fatalf("autograph missing")
	}
}

func TestLoadMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	writeIcons(t, dir, []string{"Umi", "Riko"})
	_, err := Load(dir, smallRoster(t))
	if !errors.Is(err, ErrTemplateMissing) {
		t.Fatalf("expected ErrTemplateMissing got %v", err)
	}
}
