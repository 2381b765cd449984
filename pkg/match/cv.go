package match

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// CV matches with OpenCV's normalized correlation coefficient (TM_CCOEFF_NORMED),
// the score a confidence threshold is usually expressed in.
type CV struct{}

func (CV) Locate(needle, haystack image.Image, confidence float64, useColor bool) (image.Rectangle, bool, error) {
	nb, hb := needle.Bounds(), haystack.Bounds()
	if nb.Empty() || nb.Dx() > hb.Dx() || nb.Dy() > hb.Dy() {
		return image.Rectangle{}, false, nil
	}

	hay, err := toMat(haystack, useColor)
	if err != nil {
		return image.Rectangle{}, false, fmt.Errorf("haystack: %w", err)
	}
	defer hay.Close()

	tmpl, err := toMat(needle, useColor)
	if err != nil {
		return image.Rectangle{}, false, fmt.Errorf("needle: %w", err)
	}
	defer tmpl.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(hay, tmpl, &result, gocv.TmCcoeffNormed, mask)
	if result.Empty() {
		return image.Rectangle{}, false, nil
	}
	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
	// a flat template has zero variance and scores NaN/Inf
	score := float64(maxVal)
	if math.IsNaN(score) || math.IsInf(score, 0) || score < confidence {
		return image.Rectangle{}, false, nil
	}
	r := image.Rect(maxLoc.X, maxLoc.Y, maxLoc.X+nb.Dx(), maxLoc.Y+nb.Dy())
	return r.Add(hb.Min), true, nil
}

// toMat converts img to a BGR Mat, or a single channel one when color is off.
func toMat(img image.Image, color bool) (gocv.Mat, error) {
	m, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("image to mat: %w", err)
	}
	if color {
		return m, nil
	}
	gray := gocv.NewMat()
	gocv.CvtColor(m, &gray, gocv.ColorBGRToGray)
	m.Close()
	return gray, nil
}
