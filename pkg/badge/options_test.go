package badge

import (
	"image/color"
	"testing"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}

	if opts.Text != DefaultText {
		t.Errorf("Text = %q, want %q", opts.Text, DefaultText)
	}
	if opts.Gravity != GravitySouthEast {
		t.Errorf("Gravity = %q, want southeast", opts.Gravity)
	}
	if opts.Shape != ShapeRoundedRectangle {
		t.Errorf("Shape = %q, want rounded", opts.Shape)
	}
	if opts.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want %v", opts.FontSize, DefaultFontSize)
	}
	if opts.PaddingX != DefaultPaddingX || opts.PaddingY != DefaultPaddingY {
		t.Errorf("padding = (%d,%d), want (%d,%d)", opts.PaddingX, opts.PaddingY, DefaultPaddingX, DefaultPaddingY)
	}
	if opts.BackgroundColor != DefaultBackgroundColor {
		t.Errorf("BackgroundColor = %+v, want %+v", opts.BackgroundColor, DefaultBackgroundColor)
	}
	if opts.ShadowColor != DefaultShadowColor {
		t.Errorf("ShadowColor = %+v, want %+v", opts.ShadowColor, DefaultShadowColor)
	}
	if opts.Opacity != DefaultOpacity {
		t.Errorf("Opacity = %v, want %v", opts.Opacity, DefaultOpacity)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Text: "BETA"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts != first {
		t.Error("second validation changed options")
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	opts := Options{Gravity: "middle"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid gravity should fail")
	}

	opts = Options{Shape: "hexagon"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid shape should fail")
	}
}

func TestGradientRequiresEndColor(t *testing.T) {
	opts := Options{UseGradient: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.UseGradient {
		t.Error("gradient without end color should be disabled")
	}

	opts = Options{UseGradient: true, GradientEndColor: color.NRGBA{R: 1, A: 255}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !opts.UseGradient {
		t.Error("gradient with end color should stay enabled")
	}
}

func TestBorderColorDefaultsWhenWidthSet(t *testing.T) {
	opts := Options{BorderWidth: 2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.BorderColor != Black {
		t.Errorf("BorderColor = %+v, want opaque black", opts.BorderColor)
	}
}

func TestScaled(t *testing.T) {
	opts := Options{
		FontSize:     28,
		PaddingX:     14,
		PaddingY:     4,
		BorderRadius: 8,
		ShadowSize:   4,
		BorderWidth:  2,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	half := opts.Scaled(0.5)
	if half.FontSize != 14 {
		t.Errorf("FontSize = %v, want 14", half.FontSize)
	}
	// Padding rounds to even so the label stays centered.
	if half.PaddingX%2 != 0 || half.PaddingY%2 != 0 {
		t.Errorf("padding (%d,%d) not even", half.PaddingX, half.PaddingY)
	}
	if half.ShadowSize != 2 {
		t.Errorf("ShadowSize = %d, want 2", half.ShadowSize)
	}
	if half.BorderRadius != 4 {
		t.Errorf("BorderRadius = %v, want 4", half.BorderRadius)
	}
}

// Effects that were enabled must survive aggressive downscaling: floors of
// one pixel instead of vanishing.
func TestScaledFloors(t *testing.T) {
	opts := Options{ShadowSize: 4, BorderRadius: 8, BorderWidth: 2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	tiny := opts.Scaled(0.01)
	if tiny.ShadowSize < 1 {
		t.Errorf("ShadowSize = %d, want >= 1", tiny.ShadowSize)
	}
	if tiny.BorderRadius < 1 {
		t.Errorf("BorderRadius = %v, want >= 1", tiny.BorderRadius)
	}
	if tiny.BorderWidth < 1 {
		t.Errorf("BorderWidth = %v, want >= 1", tiny.BorderWidth)
	}
}

func TestScaledIdentity(t *testing.T) {
	opts := Options{PaddingX: 14, PaddingY: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	same := opts.Scaled(1)
	if same != opts {
		t.Error("scale 1 should return options unchanged")
	}
}

func TestRadii(t *testing.T) {
	opts := Options{BorderRadius: 8}
	if r := opts.Radii(); !r.Uniform() || r.TopLeft != 8 {
		t.Errorf("uniform radii = %+v", r)
	}

	custom := CornerRadii{TopLeft: 1, TopRight: 2, BottomRight: 3, BottomLeft: 4}
	opts.CornerRadii = &custom
	if r := opts.Radii(); r != custom {
		t.Errorf("per-corner radii = %+v, want %+v", r, custom)
	}
}
