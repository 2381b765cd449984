// Package ocr reads the held-count number printed on a grid cell.
package ocr

import (
	"fmt"
	"image"
	"log"
)

// Recognizer turns an image holding a single line of text into that text.
type Recognizer interface {
	RecognizeLine(img image.Image) (string, error)
}

// CountReader preprocesses a count crop and parses the recognized digits.
type CountReader struct {
	Recognizer Recognizer
	// Dump, when set, receives every preprocessed image before recognition.
	Dump func(img image.Image)
}

// NewCountReader returns a CountReader backed by rec.
func NewCountReader(rec Recognizer) *CountReader {
	return &CountReader{Recognizer: rec}
}

// ReadCount returns the number shown in img. Text that is not a non-negative integer
// yields ErrUnreadable; a failing recognizer yields its own error.
func (r *CountReader) ReadCount(img image.Image) (int, error) {
	pre := Preprocess(img)
	if r.Dump != nil {
		r.Dump(pre)
	}
	text, err := r.Recognizer.RecognizeLine(pre)
	if err != nil {
		return 0, fmt.Errorf("recognize: %w", err)
	}
	n, err := ParseCount(text)
	if err != nil {
		log.Printf("OCR unreadable text=%q", snippet(text, 40))
		return 0, err
	}
	return n, nil
}
