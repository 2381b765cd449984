package main

import (
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/catalog"
	"resourceocr/pkg/config"
	"resourceocr/pkg/grid"
	"resourceocr/pkg/match"
	"resourceocr/pkg/ocr"
)

// Reads one held count, either from a count crop (-file) or from cell -col/-row
// of a full screenshot (-shot).
func main() {
	f := flag.String("file", "", "count image file to OCR")
	shot := flag.String("shot", "", "screenshot to locate the grid in")
	col := flag.Int("col", 0, "cell column when -shot is used")
	row := flag.Int("row", 0, "cell row when -shot is used")
	cfgPath := flag.String("config", "", "config file")
	flag.Parse()
	if *f == "" && *shot == "" {
		log.Fatalf("-file or -shot required")
	}

	var img image.Image
	var err error
	if *shot != "" {
		img, err = countFromShot(*cfgPath, *shot, *col, *row)
	} else {
		img, err = imaging.Open(*f)
	}
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	tess, err := ocr.NewTesseract()
	if err != nil {
		log.Fatalf("tesseract: %v", err)
	}
	defer tess.Close()
	text, err := tess.RecognizeLine(ocr.Preprocess(img))
	if err != nil {
		log.Fatalf("ocr error: %v", err)
	}
	n, err := ocr.ParseCount(text)
	fmt.Printf("text=%q count=%d err=%v\n", text, n, err)
}

func countFromShot(cfgPath, path string, col, row int) (image.Image, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	roster, err := cfg.BuildRoster()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.IconDir, roster)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	loc := grid.NewLocator(cfg.Geometry, cat.Anchor(), match.CV{})
	loc.Confidence = cfg.Thresholds.Anchor
	frame, err := loc.Locate(img)
	if err != nil {
		return nil, err
	}
	return frame.CountRegion(col, row), nil
}
