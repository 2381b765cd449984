package ocr

import (
	"errors"
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/disintegration/imaging"
)

type fakeRecognizer struct {
	text string
	err  error
	seen image.Image
}

func (f *fakeRecognizer) RecognizeLine(img image.Image) (string, error) {
	f.seen = img
	return f.text, f.err
}

func TestPreprocessGeometryAndTone(t *testing.T) {
	src := imaging.New(135, 45, color.NRGBA{55, 55, 55, 255})
	out := Preprocess(src)
	b := out.Bounds()
	if b.Dx() != 108+2*BorderSize || b.Dy() != 45+2*BorderSize {
		t.Fatalf("unexpected size %v", b)
	}
	if c := out.NRGBAAt(0, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("border should be black got %v", c)
	}
	// 55 inverts to 200; a flat image keeps its mean under contrast; 200*200/255 = 156
	c := out.NRGBAAt(BorderSize+50, BorderSize+20)
	if c.R < 155 || c.R > 157 {
		t.Fatalf("expected ~156 in the body got %v", c)
	}
}

func TestPreprocessDarkensLightDigits(t *testing.T) {
	src := imaging.New(40, 20, color.NRGBA{30, 30, 30, 255})
	for y := 5; y < 15; y++ {
		for x := 10; x < 30; x++ {
			src.SetNRGBA(x, y, color.NRGBA{240, 240, 240, 255})
		}
	}
	out := Preprocess(src)
	stroke := out.NRGBAAt(BorderSize+16, BorderSize+10)
	bg := out.NRGBAAt(BorderSize+1, BorderSize+1)
	if stroke.R >= bg.R {
		t.Fatalf("digit stroke should end darker than background: stroke=%v bg=%v", stroke, bg)
	}
}

func TestReadCount(t *testing.T) {
	rec := &fakeRecognizer{text: "12,345\n"}
	r := NewCountReader(rec)
	var dumped int
	r.Dump = func(image.Image) { dumped++ }
	n, err := r.ReadCount(imaging.New(135, 45, color.NRGBA{0, 0, 0, 255}))
	if err != nil || n != 12345 {
		t.Fatalf("expected 12345 got %d err=%v", n, err)
	}
	if rec.seen == nil || rec.seen.Bounds().Dx() != 148 {
		t.Fatalf("recognizer should receive the preprocessed image, got %v", rec.seen)
	}
	if dumped != 1 {
		t.Fatalf("expected one dump got %d", dumped)
	}
}

func TestReadCountUnreadable(t *testing.T) {
	r := NewCountReader(&fakeRecognizer{text: ""})
	_, err := r.ReadCount(imaging.New(10, 10, color.NRGBA{255, 255, 255, 255}))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable got %v", err)
	}

	boom := errors.New("tesseract crashed")
	r = NewCountReader(&fakeRecognizer{err: boom})
	_, err = r.ReadCount(imaging.New(10, 10, color.NRGBA{255, 255, 255, 255}))
	if !errors.Is(err, boom) || errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected recognizer error to pass through, got %v", err)
	}
}

// TestTesseractRoundTrip needs a local tesseract install; set OCR_TEST=1 to run it.
func TestTesseractRoundTrip(t *testing.T) {
	if os.Getenv("OCR_TEST") != "1" {
		t.Skip("tesseract tests are disabled; set OCR_TEST=1 to enable")
	}
	tess, err := NewTesseract()
	if err != nil {
		t.Fatalf("tesseract: %v", err)
	}
	defer tess.Close()
	r := NewCountReader(tess)

	for text, want := range map[string]int{"1234": 1234, "12,345": 12345} {
		n, err := r.ReadCount(RenderCount(text, 4))
		if err != nil || n != want {
			t.Fatalf("%q: expected %d got %d err=%v", text, want, n, err)
		}
	}
}

func TestSnippetKeepsRunesWhole(t *testing.T) {
	got := snippet("12€45", 3)
	if got != "12…" {
		t.Fatalf("expected cut before the euro sign got %q", got)
	}
	if got := snippet("1234", 10); got != "1234" {
		t.Fatalf("short text should pass through, got %q", got)
	}
}
