package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/ocr"
)

func main() {
	in := flag.String("file", "", "count image to preprocess")
	out := flag.String("out", "preprocessed.png", "where to write the result")
	flag.Parse()
	if *in == "" {
		log.Fatalf("-file required")
	}
	img, err := imaging.Open(*in)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	proc := ocr.Preprocess(img)
	if err := imaging.Save(proc, *out); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, proc.Bounds().Dx(), proc.Bounds().Dy())
}
