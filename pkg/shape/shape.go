// Package shape builds badge outline paths on a gg drawing context.
//
// The outline is appended as the current path; the caller decides how to
// fill or stroke it. All shapes are anchored at the origin of a w x h box.
package shape

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/devikontech/app-badge/pkg/badge"
)

// Outline appends the outline path for the given shape to dc.
//
// Shapes:
//   - rectangle: axis-aligned box
//   - rounded: rounded rectangle, honoring per-corner radii
//   - pill: rounded rectangle with radius = h/2 (fully rounded ends)
//   - circle: circle bounded by the max(w, h) diameter, centered in the box
//   - triangle: isoceles, apex at top-center, base spanning the full width
func Outline(dc *gg.Context, w, h float64, s badge.Shape, radii badge.CornerRadii) {
	switch s {
	case badge.ShapePill:
		roundedRect(dc, w, h, badge.UniformRadii(h/2))
	case badge.ShapeCircle:
		d := math.Max(w, h)
		dc.DrawCircle(w/2, h/2, d/2)
	case badge.ShapeTriangle:
		dc.MoveTo(w/2, 0)
		dc.LineTo(w, h)
		dc.LineTo(0, h)
		dc.ClosePath()
	case badge.ShapeRoundedRectangle:
		roundedRect(dc, w, h, radii)
	default:
		dc.DrawRectangle(0, 0, w, h)
	}
}

// roundedRect traces a rectangle with quadratic corner curves sized to each
// corner's radius. A zero radius at a corner degrades to a straight line, so
// all-zero radii produce a path pixel-equivalent to a plain rectangle.
func roundedRect(dc *gg.Context, w, h float64, radii badge.CornerRadii) {
	limit := math.Min(w, h) / 2
	tl := clampRadius(radii.TopLeft, limit)
	tr := clampRadius(radii.TopRight, limit)
	br := clampRadius(radii.BottomRight, limit)
	bl := clampRadius(radii.BottomLeft, limit)

	dc.NewSubPath()
	dc.MoveTo(tl, 0)

	dc.LineTo(w-tr, 0)
	if tr > 0 {
		dc.QuadraticTo(w, 0, w, tr)
	}

	dc.LineTo(w, h-br)
	if br > 0 {
		dc.QuadraticTo(w, h, w-br, h)
	}

	dc.LineTo(bl, h)
	if bl > 0 {
		dc.QuadraticTo(0, h, 0, h-bl)
	}

	dc.LineTo(0, tl)
	if tl > 0 {
		dc.QuadraticTo(0, 0, tl, 0)
	}

	dc.ClosePath()
}

func clampRadius(r, limit float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Min(r, limit)
}
