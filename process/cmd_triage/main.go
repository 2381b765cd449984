package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/config"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/match"
	"resourceocr/process/pipeline"
	"resourceocr/process/screening"
)

func main() {
	cfgPath := flag.String("config", "", "config file")
	dir := flag.String("dir", "", "screenshot directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dir != "" {
		cfg.ScreenshotDir = *dir
	}
	roster, err := cfg.BuildRoster()
	if err != nil {
		log.Fatalf("roster: %v", err)
	}
	cat, err := catalog.Load(cfg.IconDir, roster)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	paths, err := pipeline.Discover(cfg.ScreenshotDir, cfg.ScreenshotPattern, cfg.Window)
	if err != nil {
		log.Fatalf("discover: %v", err)
	}

	loc := grid.NewLocator(cfg.Geometry, cat.Anchor(), match.CV{})
	loc.Confidence = cfg.Thresholds.Anchor
	scr := screening.NewScreener(loc, cat, match.CV{}, roster)
	scr.MemorialConfidence = cfg.Thresholds.TriageMemorial
	scr.AutographConfidence = cfg.Thresholds.TriageAutograph

	tri, err := scr.Classify(paths)
	for _, v := range tri.Verdicts {
		switch v.Kind {
		case screening.MemorialScreen:
			fmt.Printf("%s\tmemorial\t%s\t%s\n", v.Path, v.Group, v.Name)
		case screening.AutographScreen:
			fmt.Printf("%s\tautograph\t\t%s\n", v.Path, v.Name)
		default:
			fmt.Printf("%s\t%s\n", v.Path, v.Kind)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
