package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/disintegration/imaging"

	"resourceocr/pkg/ocr"
)

// Renders digits the way the count overlay shows them, for checking the
// recognizer without a device.
func main() {
	text := flag.String("text", "12,345", "digits to render")
	scale := flag.Int("scale", 4, "upscale factor")
	out := flag.String("out", "count.png", "output file")
	flag.Parse()
	img := ocr.RenderCount(*text, *scale)
	if err := imaging.Save(img, *out); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}
