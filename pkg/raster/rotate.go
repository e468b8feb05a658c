package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Rotate rotates img by the given degrees about its own center, returning a
// raster whose bounds expand to the rotated bounding box, filled with
// transparency outside the source. Positive degrees rotate clockwise in
// screen coordinates. Zero degrees returns the input unchanged.
func Rotate(img *image.NRGBA, degrees int) *image.NRGBA {
	if degrees == 0 {
		return img
	}
	// The imaging package treats positive angles as counter-clockwise, so
	// flip the sign to keep clockwise-positive screen semantics.
	return imaging.Rotate(img, float64(-degrees), color.NRGBA{})
}

// RotatedBounds returns the bounding box dimensions of a w x h box rotated
// by the given degrees: round(w*|cos| + h*|sin|) by round(w*|sin| + h*|cos|).
func RotatedBounds(w, h int, degrees int) (int, int) {
	if degrees == 0 {
		return w, h
	}
	rad := float64(degrees) * math.Pi / 180
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	newW := int(math.Round(float64(w)*cos + float64(h)*sin))
	newH := int(math.Round(float64(w)*sin + float64(h)*cos))
	return newW, newH
}
