package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// CountChars is the whitelist for count overlays: digits and the thousands separator.
const CountChars = "0123456789,"

// Tesseract recognizes single lines with a reusable gosseract client.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract configures a client for one line of digits.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		client.Close()
		return nil, fmt.Errorf("set PSM: %w", err)
	}
	if err := client.SetWhitelist(CountChars); err != nil {
		client.Close()
		return nil, fmt.Errorf("set whitelist: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// Close releases the tesseract handle.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

func (t *Tesseract) RecognizeLine(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}
