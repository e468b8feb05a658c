package badge

import (
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// Shape selects the badge outline geometry.
type Shape string

// Supported badge shapes.
const (
	ShapeRectangle        Shape = "rectangle"
	ShapeRoundedRectangle Shape = "rounded"
	ShapePill             Shape = "pill"
	ShapeCircle           Shape = "circle"
	ShapeTriangle         Shape = "triangle"
)

// ValidShapes is the set of supported badge shapes.
var ValidShapes = map[Shape]bool{
	ShapeRectangle:        true,
	ShapeRoundedRectangle: true,
	ShapePill:             true,
	ShapeCircle:           true,
	ShapeTriangle:         true,
}

// ParseShape converts a string into a Shape.
func ParseShape(s string) (Shape, error) {
	shape := Shape(s)
	if !ValidShapes[shape] {
		return "", apperrors.New(apperrors.ErrCodeInvalidShape,
			"invalid shape: %q (must be one of: rectangle, rounded, pill, circle, triangle)", s)
	}
	return shape, nil
}

// CornerRadii holds per-corner radius overrides for rounded rectangles.
// A zero radius at a corner produces a straight corner.
type CornerRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// UniformRadii returns radii with the same value at every corner.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Uniform reports whether all four corners share one radius.
func (r CornerRadii) Uniform() bool {
	return r.TopLeft == r.TopRight && r.TopRight == r.BottomRight && r.BottomRight == r.BottomLeft
}

// Default values applied by ValidateAndSetDefaults. These mirror the
// reference template ("DEV" on red, southeast ribbon).
const (
	DefaultText         = "DEV"
	DefaultFontSize     = 28.0
	DefaultPaddingX     = 14
	DefaultPaddingY     = 4
	DefaultBorderRadius = 8.0
	DefaultShadowSize   = 4
	DefaultOpacity      = 1.0
)

// DefaultGravity is the default badge anchor.
const DefaultGravity = GravitySouthEast

// DefaultShape is the default badge outline.
const DefaultShape = ShapeRoundedRectangle

// DefaultBackgroundColor is the default badge fill (material red 500).
var DefaultBackgroundColor = color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}

// DefaultTextColor is the default label color.
var DefaultTextColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// DefaultShadowColor is the default drop shadow color (55% black).
var DefaultShadowColor = color.NRGBA{A: 0x8C}

// Options is the immutable badge configuration passed by value through the
// rendering pipeline. Build one, call ValidateAndSetDefaults, and hand it to
// the compositor; mutating a copy never affects an in-flight render.
type Options struct {
	// Label
	Text string

	// Colors
	BackgroundColor  color.NRGBA
	TextColor        color.NRGBA
	ShadowColor      color.NRGBA
	BorderColor      color.NRGBA
	GradientEndColor color.NRGBA
	UseGradient      bool

	// Font selection: a parsed font object wins over a file path, which wins
	// over the embedded default.
	Font     *truetype.Font
	FontPath string
	FontSize float64

	// Geometry
	PaddingX     int
	PaddingY     int
	Shape        Shape
	BorderRadius float64
	CornerRadii  *CornerRadii // per-corner overrides; nil means uniform BorderRadius
	BorderWidth  float64

	// Effects
	Opacity    float64
	ShadowSize int

	// Placement
	Gravity  Gravity
	Position *Position // nil means circular placement

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks invariants and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Text == "" {
		o.Text = DefaultText
	}
	if o.Gravity == "" {
		o.Gravity = DefaultGravity
	} else if !o.Gravity.Valid() {
		return apperrors.New(apperrors.ErrCodeInvalidGravity, "invalid gravity: %q", string(o.Gravity))
	}
	if o.Shape == "" {
		o.Shape = DefaultShape
	} else if !ValidShapes[o.Shape] {
		return apperrors.New(apperrors.ErrCodeInvalidShape, "invalid shape: %q", string(o.Shape))
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.PaddingX <= 0 {
		o.PaddingX = DefaultPaddingX
	}
	if o.PaddingY <= 0 {
		o.PaddingY = DefaultPaddingY
	}
	if o.BorderRadius < 0 {
		o.BorderRadius = DefaultBorderRadius
	}
	if o.Opacity <= 0 || o.Opacity > 1 {
		o.Opacity = DefaultOpacity
	}
	if o.ShadowSize < 0 {
		o.ShadowSize = 0
	}
	if zeroColor(o.BackgroundColor) {
		o.BackgroundColor = DefaultBackgroundColor
	}
	if zeroColor(o.TextColor) {
		o.TextColor = DefaultTextColor
	}
	if zeroColor(o.ShadowColor) {
		o.ShadowColor = DefaultShadowColor
	}
	if o.UseGradient && zeroColor(o.GradientEndColor) {
		// Gradient fill only applies with an end color present.
		o.UseGradient = false
	}
	if o.BorderWidth > 0 && zeroColor(o.BorderColor) {
		o.BorderColor = Black
	}
	o.validated = true
	return nil
}

// Radii returns the effective per-corner radii for the badge outline.
func (o Options) Radii() CornerRadii {
	if o.CornerRadii != nil {
		return *o.CornerRadii
	}
	return UniformRadii(o.BorderRadius)
}

// Scaled returns a copy with all size-dependent fields scaled by the given
// factor, which the compositor derives from the icon's content width against
// the 192px reference design size. Padding is rounded to even integers to
// preserve symmetric centering; shadow, radius, and a nonzero border keep a
// floor of one pixel so they never vanish on small icons.
func (o Options) Scaled(scale float64) Options {
	if scale == 1 || scale <= 0 {
		return o
	}
	out := o
	out.FontSize = o.FontSize * scale
	out.PaddingX = roundEven(float64(o.PaddingX) * scale)
	out.PaddingY = roundEven(float64(o.PaddingY) * scale)
	if o.ShadowSize > 0 {
		out.ShadowSize = atLeast(1, int(math.Round(float64(o.ShadowSize)*scale)))
	}
	if o.BorderRadius > 0 {
		out.BorderRadius = math.Max(1, o.BorderRadius*scale)
	}
	if o.CornerRadii != nil {
		scaled := CornerRadii{
			TopLeft:     scaleRadius(o.CornerRadii.TopLeft, scale),
			TopRight:    scaleRadius(o.CornerRadii.TopRight, scale),
			BottomRight: scaleRadius(o.CornerRadii.BottomRight, scale),
			BottomLeft:  scaleRadius(o.CornerRadii.BottomLeft, scale),
		}
		out.CornerRadii = &scaled
	}
	if o.BorderWidth > 0 {
		out.BorderWidth = math.Max(1, o.BorderWidth*scale)
	}
	return out
}

func scaleRadius(r, scale float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Max(1, r*scale)
}

// roundEven rounds v to the nearest even integer.
func roundEven(v float64) int {
	return int(math.Round(v/2)) * 2
}

func atLeast(min, v int) int {
	if v < min {
		return min
	}
	return v
}

func zeroColor(c color.NRGBA) bool {
	return c == color.NRGBA{}
}
