// Package pipeline runs a full extraction: discover, triage, memorial passes per
// group, autograph pass.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/config"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/inventory"
	"resourceocr/pkg/match"
	"resourceocr/pkg/ocr"
	"resourceocr/process/classify"
	"resourceocr/process/screening"
)

// Result is everything one run produced.
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Table      *inventory.Table
	Triage     *screening.Triage
	Memorials  []classify.Report
	Autograph  classify.Report
}

// Missing collects the unresolved members of every pass.
func (r *Result) Missing() []classify.MissingMember {
	var out []classify.MissingMember
	for _, rep := range r.Memorials {
		out = append(out, rep.Missing...)
	}
	return append(out, r.Autograph.Missing...)
}

type Pipeline struct {
	Config   *config.Config
	Roster   *inventory.Roster
	Screener *screening.Screener
	Engine   *classify.Engine
}

// New wires a pipeline from its parts. cfg thresholds and geometry apply to both
// triage and the passes.
func New(cfg *config.Config, roster *inventory.Roster, cat *catalog.Catalog, m match.Matcher, rec ocr.Recognizer) *Pipeline {
	loc := grid.NewLocator(cfg.Geometry, cat.Anchor(), m)
	loc.Confidence = cfg.Thresholds.Anchor

	scr := screening.NewScreener(loc, cat, m, roster)
	scr.MemorialConfidence = cfg.Thresholds.TriageMemorial
	scr.AutographConfidence = cfg.Thresholds.TriageAutograph

	reader := ocr.NewCountReader(rec)
	var dumper *classify.Dumper
	if cfg.DebugDir != "" {
		dumper = &classify.Dumper{Dir: cfg.DebugDir}
		n := 0
		reader.Dump = func(img image.Image) {
			n++
			dumper.Save(fmt.Sprintf("preprocessed_%04d", n), img)
		}
	}
	eng := classify.NewEngine(loc, cat, m, reader)
	eng.MemorialConfidence = cfg.Thresholds.Memorial
	eng.AutographConfidence = cfg.Thresholds.Autograph
	eng.AutographRows = cfg.AutographRows
	eng.Dumper = dumper
	return &Pipeline{Config: cfg, Roster: roster, Screener: scr, Engine: eng}
}

// Open builds the production pipeline: templates from cfg.IconDir, OpenCV matching
// and tesseract recognition. The returned func releases the tesseract client.
func Open(cfg *config.Config) (*Pipeline, func() error, error) {
	roster, err := cfg.BuildRoster()
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(cfg.IconDir, roster)
	if err != nil {
		return nil, nil, err
	}
	tess, err := ocr.NewTesseract()
	if err != nil {
		return nil, nil, fmt.Errorf("tesseract: %w", err)
	}
	return New(cfg, roster, cat, match.CV{}, tess), tess.Close, nil
}

// Run processes the current screenshot window of the configured directory.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	paths, err := Discover(p.Config.ScreenshotDir, p.Config.ScreenshotPattern, p.Config.Window)
	if err != nil {
		return nil, err
	}
	log.Printf("discovered %d screenshots in %s", len(paths), p.Config.ScreenshotDir)
	return p.RunPaths(ctx, paths)
}

// RunPaths processes an explicit window, newest first. Fatal errors abort the run;
// the partial result is returned alongside for diagnostics.
func (p *Pipeline) RunPaths(ctx context.Context, paths []string) (*Result, error) {
	res := &Result{StartedAt: time.Now(), Table: inventory.NewTable(p.Roster)}

	tri, err := p.Screener.Classify(paths)
	res.Triage = tri
	if err != nil {
		return res, err
	}
	for _, g := range inventory.Groups {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rep, err := p.Engine.RunMemorial(res.Table, g, tri.Memorials[g])
		if err != nil {
			return res, err
		}
		res.Memorials = append(res.Memorials, rep)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	rep, err := p.Engine.RunAutograph(res.Table, tri.Autographs)
	if err != nil {
		return res, err
	}
	res.Autograph = rep
	res.FinishedAt = time.Now()
	log.Printf("run finished in %s missing=%d", res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond), len(res.Missing()))
	return res, nil
}
