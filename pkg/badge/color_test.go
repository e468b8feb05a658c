package badge

import (
	"image/color"
	"testing"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"#F44336", color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}, false},
		{"#f44336", color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}, false},
		{"#FFF", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, false},
		{"#abc", color.NRGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}, false},
		{"#00000080", color.NRGBA{A: 0x80}, false},
		{"rgba(255, 0, 0, 1)", color.NRGBA{R: 255, A: 255}, false},
		{"rgba(0,0,0,0.55)", color.NRGBA{A: 140}, false},
		{"  #fff  ", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, false},
		{"red", Black, true},
		{"#GGHHII", Black, true},
		{"#12345", Black, true},
		{"rgba(300,0,0,1)", Black, true},
		{"rgba(0,0,0,2)", Black, true},
		{"rgba(0,0,0)", Black, true},
		{"", Black, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
		if tt.wantErr && !apperrors.Is(err, apperrors.ErrCodeInvalidColor) {
			t.Errorf("ParseColor(%q) error code = %v, want INVALID_COLOR", tt.input, apperrors.GetCode(err))
		}
	}
}

// Malformed input must still yield a drawable color, not a zero value.
func TestParseColorFallsBackToBlack(t *testing.T) {
	got, err := ParseColor("not-a-color")
	if err == nil {
		t.Fatal("expected error for malformed color")
	}
	if got != Black {
		t.Errorf("fallback = %+v, want opaque black", got)
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	colors := []color.NRGBA{
		{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF},
		{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80},
		{A: 0x8C},
	}

	for _, c := range colors {
		s := FormatColor(c)
		got, err := ParseColor(s)
		if err != nil {
			t.Errorf("ParseColor(FormatColor(%+v)) = error %v", c, err)
			continue
		}
		if got != c {
			t.Errorf("round trip %+v -> %q -> %+v", c, s, got)
		}
	}
}

func TestFormatColorOpaqueOmitsAlpha(t *testing.T) {
	if got := FormatColor(color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}); got != "#f44336" {
		t.Errorf("FormatColor opaque = %q, want #f44336", got)
	}
	if got := FormatColor(color.NRGBA{A: 0x8C}); got != "#0000008c" {
		t.Errorf("FormatColor translucent = %q, want #0000008c", got)
	}
}
