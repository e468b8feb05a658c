package raster

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestRotateZeroIsNoop(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	if out := Rotate(img, 0); out != img {
		t.Error("zero rotation should return the input unchanged")
	}
}

func TestRotateQuarterTurnSwapsDimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	out := Rotate(img, 90)

	b := out.Bounds()
	if b.Dx() != 10 || b.Dy() != 20 {
		t.Errorf("rotated size = %dx%d, want 10x20", b.Dx(), b.Dy())
	}
}

func TestRotateExpandsToBoundingBox(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 255, A: 255}), image.Point{}, draw.Src)

	out := Rotate(img, 45)
	b := out.Bounds()
	wantW, wantH := RotatedBounds(20, 10, 45)
	// The imaging backend may differ by a pixel of rounding.
	if abs(b.Dx()-wantW) > 1 || abs(b.Dy()-wantH) > 1 {
		t.Errorf("rotated size = %dx%d, want about %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	// Corners of the expanded box are outside the rotated rectangle.
	if out.NRGBAAt(0, 0).A != 0 {
		t.Error("corner should be transparent after rotation")
	}
}

func TestRotatedBounds(t *testing.T) {
	tests := []struct {
		w, h, degrees  int
		wantW, wantH   int
	}{
		{20, 10, 0, 20, 10},
		{20, 10, 90, 10, 20},
		{20, 10, 180, 20, 10},
		{20, 10, 45, 21, 21},  // (20+10)/sqrt(2) ≈ 21.2
		{100, 50, -45, 106, 106},
	}

	for _, tt := range tests {
		w, h := RotatedBounds(tt.w, tt.h, tt.degrees)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("RotatedBounds(%d,%d,%d) = (%d,%d), want (%d,%d)",
				tt.w, tt.h, tt.degrees, w, h, tt.wantW, tt.wantH)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
