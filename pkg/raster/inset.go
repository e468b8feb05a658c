package raster

import "image"

// Edge identifies the image edge an inset scan starts from.
type Edge int

// The four scannable edges.
const (
	EdgeNorth Edge = iota
	EdgeSouth
	EdgeEast
	EdgeWest
)

// alphaThreshold is the 0-255 alpha above which a pixel counts as content.
const alphaThreshold = 20

// FindInset returns the pixel distance from the given edge to the first
// pixel whose alpha exceeds the content threshold, scanning along the
// midline (vertical midline for north/south, horizontal for east/west).
//
// The scan runs in two phases: a coarse pass with a step of
// max(1, min(w,h)/50) finds an approximate boundary quickly, then a fine
// one-pixel backward pass pinpoints the exact transition. Returns 0 when no
// content is found along the scanned line.
func FindInset(img image.Image, edge Edge) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var length int
	switch edge {
	case EdgeNorth, EdgeSouth:
		length = h
	default:
		length = w
	}

	opaque := func(d int) bool {
		var x, y int
		switch edge {
		case EdgeNorth:
			x, y = w/2, d
		case EdgeSouth:
			x, y = w/2, h-1-d
		case EdgeEast:
			x, y = w-1-d, h/2
		default: // EdgeWest
			x, y = d, h/2
		}
		_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return uint8(a>>8) > alphaThreshold
	}

	step := min(w, h) / 50
	if step < 1 {
		step = 1
	}

	// Coarse pass.
	found := -1
	for d := 0; d < length; d += step {
		if opaque(d) {
			found = d
			break
		}
	}
	if found < 0 {
		return 0
	}

	// Fine backward pass to the exact transition.
	for found > 0 && opaque(found-1) {
		found--
	}
	return found
}
