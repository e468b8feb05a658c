package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/devikontech/app-badge/pkg/cache"
)

// Shadower generates drop shadows for badge rasters, caching the blurred
// shadow layer by (width, height, color, blur) fingerprint.
type Shadower struct {
	Cache cache.Store
	Keyer cache.Keyer
}

// NewShadower creates a shadower. A nil store disables caching; a nil keyer
// applies the default keyer.
func NewShadower(store cache.Store, keyer cache.Keyer) *Shadower {
	if store == nil {
		store = cache.NewNull()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Shadower{Cache: store, Keyer: keyer}
}

// Apply returns a new raster padded by blur pixels on every side, holding a
// blurred shadow of img's silhouette underneath the image itself.
//
// The shadow layer is an alpha-derived mask flood-filled with shadowColor
// wherever the source has any coverage, then softened with a multi-pass box
// blur. The pass count scales with the radius (2, 3, or 4 passes) to cheaply
// approximate Gaussian falloff.
func (s *Shadower) Apply(img *image.NRGBA, shadowColor color.NRGBA, blur int) *image.NRGBA {
	if blur <= 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	paddedW, paddedH := w+2*blur, h+2*blur

	key := s.Keyer.ShadowKey(cache.ShadowKeyOpts{
		Width:  w,
		Height: h,
		Color:  fmt.Sprintf("%02x%02x%02x%02x", shadowColor.R, shadowColor.G, shadowColor.B, shadowColor.A),
		Blur:   blur,
	})

	shadow, ok := s.Cache.Get(key)
	if !ok {
		shadow = silhouette(img, shadowColor, blur)
		for i := 0; i < blurPasses(blur); i++ {
			boxBlur(shadow, blur)
		}
		s.Cache.Put(key, shadow)
	}

	out := NewTransparent(paddedW, paddedH)
	Over(out, shadow, 0, 0)
	Over(out, img, blur, blur)
	return out
}

// blurPasses returns the number of box blur passes for a radius.
func blurPasses(radius int) int {
	switch {
	case radius <= 2:
		return 2
	case radius <= 10:
		return 3
	default:
		return 4
	}
}

// silhouette builds the unblurred shadow layer: a padded canvas carrying
// shadowColor wherever the source has non-zero alpha.
func silhouette(img *image.NRGBA, shadowColor color.NRGBA, pad int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := NewTransparent(w+2*pad, h+2*pad)
	for y := 0; y < h; y++ {
		srcRow := img.PixOffset(b.Min.X, b.Min.Y+y)
		dstRow := mask.PixOffset(pad, pad+y)
		for x := 0; x < w; x++ {
			if img.Pix[srcRow+x*4+3] > 0 {
				i := dstRow + x*4
				mask.Pix[i] = shadowColor.R
				mask.Pix[i+1] = shadowColor.G
				mask.Pix[i+2] = shadowColor.B
				mask.Pix[i+3] = shadowColor.A
			}
		}
	}
	return mask
}

// boxBlur applies one separable box blur pass of the given radius in place.
func boxBlur(img *image.NRGBA, radius int) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	tmp := make([]uint8, len(img.Pix))

	// Horizontal pass: img -> tmp.
	for y := 0; y < h; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			lo, hi := x-radius, x+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= w {
				hi = w - 1
			}
			var sum [4]int
			for xx := lo; xx <= hi; xx++ {
				i := row + xx*4
				sum[0] += int(img.Pix[i])
				sum[1] += int(img.Pix[i+1])
				sum[2] += int(img.Pix[i+2])
				sum[3] += int(img.Pix[i+3])
			}
			n := hi - lo + 1
			i := row + x*4
			tmp[i] = uint8(sum[0] / n)
			tmp[i+1] = uint8(sum[1] / n)
			tmp[i+2] = uint8(sum[2] / n)
			tmp[i+3] = uint8(sum[3] / n)
		}
	}

	// Vertical pass: tmp -> img.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			lo, hi := y-radius, y+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= h {
				hi = h - 1
			}
			var sum [4]int
			for yy := lo; yy <= hi; yy++ {
				i := img.PixOffset(b.Min.X+x, b.Min.Y+yy)
				sum[0] += int(tmp[i])
				sum[1] += int(tmp[i+1])
				sum[2] += int(tmp[i+2])
				sum[3] += int(tmp[i+3])
			}
			n := hi - lo + 1
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			img.Pix[i] = uint8(sum[0] / n)
			img.Pix[i+1] = uint8(sum[1] / n)
			img.Pix[i+2] = uint8(sum[2] / n)
			img.Pix[i+3] = uint8(sum[3] / n)
		}
	}
}
