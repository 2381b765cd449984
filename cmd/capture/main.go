package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/kbinani/screenshot"

	"resourceocr/pkg/config"
)

// Grabs the emulator window into the screenshot directory with the name the
// pipeline discovers, Screenshot_<timestamp>.png.
func main() {
	cfgPath := flag.String("config", "", "config file")
	display := flag.Int("display", 0, "display index to capture")
	x := flag.Int("x", 0, "capture rect left (0 with -w 0 = whole display)")
	y := flag.Int("y", 0, "capture rect top")
	w := flag.Int("w", 0, "capture rect width")
	h := flag.Int("h", 0, "capture rect height")
	count := flag.Int("n", 1, "number of captures")
	every := flag.Duration("every", 2*time.Second, "delay between captures")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if n := screenshot.NumActiveDisplays(); *display >= n {
		log.Fatalf("display %d not available (%d active)", *display, n)
	}
	bounds := screenshot.GetDisplayBounds(*display)
	if *w > 0 && *h > 0 {
		bounds = image.Rect(*x, *y, *x+*w, *y+*h).Add(bounds.Min)
	}
	if err := os.MkdirAll(cfg.ScreenshotDir, 0o755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	for i := 0; i < *count; i++ {
		if i > 0 {
			time.Sleep(*every)
		}
		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			log.Fatalf("capture: %v", err)
		}
		name := fmt.Sprintf("Screenshot_%s.png", time.Now().Format("20060102-150405.000"))
		p := filepath.Join(cfg.ScreenshotDir, name)
		if err := imaging.Save(img, p); err != nil {
			log.Fatalf("save: %v", err)
		}
		fmt.Println(p)
	}
}
