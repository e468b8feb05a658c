package badge

import (
	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// Gravity anchors a badge to a compass corner or edge of its container.
// Each gravity carries a fixed badge rotation and a fixed positioning angle
// used by the circular placement trigonometry.
type Gravity string

// The six supported gravities.
const (
	GravityNorth     Gravity = "north"
	GravityNorthEast Gravity = "northeast"
	GravityNorthWest Gravity = "northwest"
	GravitySouth     Gravity = "south"
	GravitySouthEast Gravity = "southeast"
	GravitySouthWest Gravity = "southwest"
)

// gravityTraits holds the per-gravity constants used by placement math.
// Keeping them in one table makes the tie-break rules auditable per gravity.
type gravityTraits struct {
	rotation int     // badge rotation in degrees
	angle    float64 // positioning angle in degrees for circular placement
	north    bool    // true for the top-edge gravities
}

var gravityTable = map[Gravity]gravityTraits{
	GravityNorth:     {rotation: 0, angle: 180, north: true},
	GravityNorthEast: {rotation: 45, angle: -135, north: true},
	GravityNorthWest: {rotation: -45, angle: 135, north: true},
	GravitySouth:     {rotation: 0, angle: 0},
	GravitySouthEast: {rotation: -45, angle: -45},
	GravitySouthWest: {rotation: 45, angle: 45},
}

// Gravities lists all supported gravities in stable order.
var Gravities = []Gravity{
	GravityNorth,
	GravityNorthEast,
	GravityNorthWest,
	GravitySouth,
	GravitySouthEast,
	GravitySouthWest,
}

// ParseGravity converts a string into a Gravity.
func ParseGravity(s string) (Gravity, error) {
	g := Gravity(s)
	if _, ok := gravityTable[g]; !ok {
		return "", apperrors.New(apperrors.ErrCodeInvalidGravity,
			"invalid gravity: %q (must be one of: north, northeast, northwest, south, southeast, southwest)", s)
	}
	return g, nil
}

// Valid reports whether g is one of the six supported gravities.
func (g Gravity) Valid() bool {
	_, ok := gravityTable[g]
	return ok
}

// Rotation returns the badge rotation in degrees for this gravity.
func (g Gravity) Rotation() int {
	return gravityTable[g].rotation
}

// PositioningAngle returns the angle in degrees used by circular placement.
// It is distinct from the badge's rotation angle.
func (g Gravity) PositioningAngle() float64 {
	return gravityTable[g].angle
}

// IsNorth reports whether the gravity anchors to the top edge of the container.
func (g Gravity) IsNorth() bool {
	return gravityTable[g].north
}
