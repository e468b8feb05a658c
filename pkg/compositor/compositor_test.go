package compositor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/devikontech/app-badge/pkg/badge"
	"github.com/devikontech/app-badge/pkg/cache"
)

func testRenderer(badges, shadows cache.Store) *Renderer {
	return NewRenderer(badges, shadows, nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

// testIcon is an opaque circle-ish icon with a transparent frame, so inset
// detection has something to measure.
func testIcon(size, margin int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	content := image.Rect(margin, margin, size-margin, size-margin)
	draw.Draw(img, content, image.NewUniform(color.NRGBA{R: 30, G: 30, B: 30, A: 255}), image.Point{}, draw.Src)
	return img
}

func defaultOpts() badge.Options {
	return badge.Options{Text: "DEV"}
}

func TestRenderPreservesDimensions(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)

	out, err := r.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Bounds() != src.Bounds() {
		t.Errorf("output bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
}

func TestRenderDoesNotMutateSource(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)
	before := make([]uint8, len(src.Pix))
	copy(before, src.Pix)

	if _, err := r.Render(context.Background(), src, defaultOpts()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Error("Render mutated the source raster")
	}
}

// Rendering the same options twice yields identical pixels: the pipeline is
// fully deterministic, with or without caches.
func TestRenderIdempotent(t *testing.T) {
	src := testIcon(128, 8)

	uncached := testRenderer(nil, nil)
	first, err := uncached.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	second, err := uncached.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("uncached renders differ")
	}

	cached := testRenderer(cache.NewMemory(0), cache.NewMemory(0))
	third, err := cached.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	fourth, err := cached.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(third.Pix, fourth.Pix) {
		t.Error("cache hit produced different pixels than the fresh render")
	}
	if !bytes.Equal(first.Pix, third.Pix) {
		t.Error("cached and uncached renders differ")
	}
}

func TestRenderChangesSomePixels(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)

	out, err := r.Render(context.Background(), src, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(out.Pix, src.Pix) {
		t.Error("badge render left the icon unchanged")
	}
}

func TestRenderBadgeCachePopulated(t *testing.T) {
	badges := cache.NewMemory(0)
	r := testRenderer(badges, nil)
	src := testIcon(128, 8)

	if _, err := r.Render(context.Background(), src, defaultOpts()); err != nil {
		t.Fatal(err)
	}
	if badges.Len() != 1 {
		t.Errorf("badge cache entries = %d, want 1", badges.Len())
	}

	// A different label is a different fingerprint.
	opts := defaultOpts()
	opts.Text = "BETA"
	if _, err := r.Render(context.Background(), src, opts); err != nil {
		t.Fatal(err)
	}
	if badges.Len() != 2 {
		t.Errorf("badge cache entries = %d, want 2", badges.Len())
	}
}

func TestRenderZeroAreaSource(t *testing.T) {
	r := testRenderer(nil, nil)
	src := image.NewNRGBA(image.Rect(0, 0, 0, 0))

	if _, err := r.Render(context.Background(), src, defaultOpts()); err == nil {
		t.Error("zero-area source should fail")
	}
}

func TestRenderAllGravities(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)

	for _, g := range badge.Gravities {
		opts := defaultOpts()
		opts.Gravity = g
		if _, err := r.Render(context.Background(), src, opts); err != nil {
			t.Errorf("Render(%s): %v", g, err)
		}
	}
}

func TestRenderAllShapes(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)

	for shape := range badge.ValidShapes {
		opts := defaultOpts()
		opts.Shape = shape
		if _, err := r.Render(context.Background(), src, opts); err != nil {
			t.Errorf("Render(%s): %v", shape, err)
		}
	}
}

func TestRenderManualPosition(t *testing.T) {
	r := testRenderer(nil, nil)
	src := testIcon(128, 8)

	pos := badge.At(50, 50)
	opts := defaultOpts()
	opts.Position = &pos
	opts.ShadowSize = 0

	out, err := r.Render(context.Background(), src, opts)
	if err != nil {
		t.Fatal(err)
	}
	// Center-positioned badge covers the icon center with badge pixels.
	center := out.NRGBAAt(64, 64)
	srcCenter := src.NRGBAAt(64, 64)
	if center == srcCenter {
		t.Error("centered badge should cover the icon center")
	}
}

func TestBadgeSizeShapes(t *testing.T) {
	opts := badge.Options{PaddingX: 10, PaddingY: 4}

	opts.Shape = badge.ShapeRectangle
	w, h := badgeSize(opts, 40, 20)
	if w != 60 || h != 28 {
		t.Errorf("rectangle size = (%v,%v), want (60,28)", w, h)
	}

	opts.Shape = badge.ShapeCircle
	w, h = badgeSize(opts, 40, 20)
	if w != h {
		t.Errorf("circle size = (%v,%v), want square", w, h)
	}
	if w != 60 { // max(40,20) + 2*max(10,4)
		t.Errorf("circle side = %v, want 60", w)
	}

	opts.Shape = badge.ShapePill
	w, h = badgeSize(opts, 40, 20)
	if h != 28 {
		t.Errorf("pill height = %v, want 28", h)
	}
	if w != 40+20+14 { // text + padding + h/2
		t.Errorf("pill width = %v, want 74", w)
	}
}

func TestRenderOpacity(t *testing.T) {
	src := testIcon(128, 8)

	opaque := defaultOpts()
	opaque.ShadowSize = 0
	translucent := defaultOpts()
	translucent.ShadowSize = 0
	translucent.Opacity = 0.5

	r := testRenderer(nil, nil)
	a, err := r.Render(context.Background(), src, opaque)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(context.Background(), src, translucent)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("opacity should change the composite")
	}
}
