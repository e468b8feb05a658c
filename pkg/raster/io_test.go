package raster

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/devikontech/app-badge/pkg/cache"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

func writeTestIcon(t *testing.T, path string) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	draw.Draw(img, image.Rect(8, 8, 24, 24), image.NewUniform(color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 255}), image.Point{}, draw.Src)

	l := NewLoader(nil, nil)
	if err := l.Save(img, path); err != nil {
		t.Fatalf("save test icon: %v", err)
	}
	return img
}

func TestLoaderRoundTripPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	want := writeTestIcon(t, path)

	l := NewLoader(nil, nil)
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Bounds() != want.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	if got.NRGBAAt(16, 16) != want.NRGBAAt(16, 16) {
		t.Errorf("center pixel = %+v, want %+v", got.NRGBAAt(16, 16), want.NRGBAAt(16, 16))
	}
	if got.NRGBAAt(0, 0).A != 0 {
		t.Error("transparent corner should survive a PNG round trip")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(nil, nil)
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

// A caller mutating a loaded raster must not corrupt the cached copy the
// next Load returns.
func TestLoaderCacheDefensiveCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writeTestIcon(t, path)

	store := cache.NewMemory(0)
	l := NewLoader(store, nil)

	first, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Fatalf("cache entries = %d, want 1", store.Len())
	}

	orig := first.NRGBAAt(16, 16)
	first.SetNRGBA(16, 16, color.NRGBA{G: 255, A: 255})

	second, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if second.NRGBAAt(16, 16) != orig {
		t.Error("mutation of a loaded raster leaked into the cache")
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "icon.png")
	writeTestIcon(t, path)

	l := NewLoader(nil, nil)
	if _, err := l.Load(path); err != nil {
		t.Fatalf("load from created directory: %v", err)
	}
}

func TestSaveJPEGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 200, G: 100, B: 50, A: 255}), image.Point{}, draw.Src)

	l := NewLoader(nil, nil)
	path := filepath.Join(dir, "icon.jpg")
	if err := l.Save(img, path); err != nil {
		t.Fatalf("save jpeg: %v", err)
	}
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("load jpeg: %v", err)
	}
	// Lossy, so only sanity-check the dimensions and rough color.
	if got.Bounds().Dx() != 16 {
		t.Errorf("width = %d, want 16", got.Bounds().Dx())
	}
	c := got.NRGBAAt(8, 8)
	if c.R < 150 || c.G > 200 {
		t.Errorf("jpeg center pixel drifted too far: %+v", c)
	}
}
