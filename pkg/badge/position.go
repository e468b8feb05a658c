// Package badge defines the badge configuration model and the placement
// geometry that decides where a badge sits on an icon.
//
// Placement comes in two flavors:
//
//   - Circular: the badge is placed tangent to the boundary of a circular
//     icon, rotated so its long edge follows the curvature. Used when no
//     manual position is configured.
//   - Manual: the badge is placed at a percentage position relative to the
//     container, either as an explicit (x%, y%) pair or as a single
//     percentage along the gravity's travel axis.
//
// Both calculators are pure math with no randomness; the literal outputs
// are pinned by regression fixtures in position_test.go.
package badge

import "math"

// Point is a pixel coordinate within a container image.
type Point struct {
	X int
	Y int
}

// Placement is a computed badge position: a pixel point for the badge's
// top-left corner plus a rotation in degrees. It is produced fresh per
// render and never persisted.
type Placement struct {
	Point    Point
	Rotation int
}

// Position is a manual badge position expressed in percent of the container
// dimensions, in the 0-100 range. When AxisOnly is true only X is meaningful
// and it denotes a position along the gravity's travel axis; the other
// coordinate is derived per gravity. Values outside [0,100] are not clamped
// here; that is the caller's responsibility.
type Position struct {
	X        float64
	Y        float64
	AxisOnly bool
}

// At returns an explicit (x%, y%) position.
func At(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Along returns a single-axis position at p% along the gravity's travel axis.
func Along(p float64) Position {
	return Position{X: p, AxisOnly: true}
}

// CalculateCircular places a badge of badgeW x badgeH on a circular icon of
// the given radius centered in a containerW x containerH canvas. The badge
// ends up tangent to the circle boundary at the gravity's positioning angle,
// rotated by the gravity's fixed rotation.
//
// The trigonometry reproduces the placement of the reference implementation,
// including its north/south asymmetry: the bottom gravities anchor on the
// chord distance sqrt(r^2 - w^2) inset by the rotated bounding box, while the
// top gravities anchor on sqrt(r^2 - (w/2)^2) without the box inset. The
// fixtures in position_test.go are the authoritative contract; do not
// re-derive the formulas without a design reference.
func CalculateCircular(containerW, containerH, badgeW, badgeH int, radius float64, gravity Gravity) Placement {
	traits := gravityTable[gravity]

	theta := traits.angle * math.Pi / 180
	bw := float64(badgeW)
	bh := float64(badgeH)

	// Axis-aligned bounding box of the badge after rotation.
	rotatedW := bw*math.Abs(math.Cos(theta)) + bh*math.Abs(math.Sin(theta))
	rotatedH := bw*math.Abs(math.Sin(theta)) + bh*math.Abs(math.Cos(theta))

	// Chord-adjusted distances from the circle center to the badge anchor,
	// clamped to zero so a badge wider than the circle collapses to the center.
	chord := math.Sqrt(math.Max(0, radius*radius-bw*bw))
	halfChord := math.Sqrt(math.Max(0, radius*radius-(bw/2)*(bw/2)))

	trig := (traits.angle - 90) * math.Pi / 180

	x := float64(containerW)/2 - (chord-bh/2)*math.Cos(trig) - rotatedW/2

	var y float64
	if traits.north {
		y = float64(containerH)/2 + (-halfChord+bh/2)*math.Sin(trig)
	} else {
		y = float64(containerH)/2 + (-chord+bh/2)*math.Sin(trig) - rotatedH/2
	}

	return Placement{
		Point:    Point{X: int(x), Y: int(y)},
		Rotation: traits.rotation,
	}
}

// axisFactors maps a single-axis percentage p (0-100) to the fractions of
// the available travel applied on each axis. Enumerating the formulas per
// gravity keeps the tie-break rules auditable and testable independently.
var axisFactors = map[Gravity]func(p float64) (fx, fy float64){
	GravityNorth:     func(p float64) (float64, float64) { return 0.5, p / 100 },
	GravitySouth:     func(p float64) (float64, float64) { return 0.5, p / 100 },
	GravityNorthWest: func(p float64) (float64, float64) { return p / 100, p / 100 },
	GravitySouthEast: func(p float64) (float64, float64) { return 1 - p/100, 1 - p/100 },
	GravityNorthEast: func(p float64) (float64, float64) { return p / 100, 1 - p/100 },
	GravitySouthWest: func(p float64) (float64, float64) { return 1 - p/100, p / 100 },
}

// CalculateManual places a badge at a manual percentage position. An explicit
// (x%, y%) pair scales directly against the available travel on each axis;
// gravity then only contributes the rotation. A single-axis position is
// expanded through the per-gravity factor table.
func CalculateManual(containerW, containerH, badgeW, badgeH int, pos Position, gravity Gravity) Placement {
	traits := gravityTable[gravity]

	availW := float64(containerW - badgeW)
	availH := float64(containerH - badgeH)

	var x, y float64
	if pos.AxisOnly {
		fx, fy := axisFactors[gravity](pos.X)
		x = availW * fx
		y = availH * fy
	} else {
		x = availW * pos.X / 100
		y = availH * pos.Y / 100
	}

	return Placement{
		Point:    Point{X: int(x), Y: int(y)},
		Rotation: traits.rotation,
	}
}
