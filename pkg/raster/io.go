// Package raster provides the image primitives under the badge compositor:
// loading and saving, transparent canvases, rotation, shadow generation,
// edge-inset detection, and bounded-concurrency batch processing.
//
// Rasters are *image.NRGBA throughout. The load path caches small images by
// absolute path; cached pixels are copied on read and write so callers can
// mutate what they receive without corrupting the cache.
package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Register decoders for the formats the compositor accepts beyond what
	// the imaging package registers itself.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/devikontech/app-badge/pkg/cache"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// loadCacheLimit is the file size above which loaded images bypass the cache.
const loadCacheLimit = 5 << 20 // 5MB

// jpegQuality is the encoder quality for lossy output, matching the
// reference 0.9 compression setting.
const jpegQuality = 90

// Loader reads and writes image files, caching small loads by absolute path.
type Loader struct {
	Cache cache.Store
	Keyer cache.Keyer
}

// NewLoader creates a loader. A nil store disables caching; a nil keyer
// applies the default keyer.
func NewLoader(store cache.Store, keyer cache.Keyer) *Loader {
	if store == nil {
		store = cache.NewNull()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Loader{Cache: store, Keyer: keyer}
}

// Load reads the image at path into an NRGBA raster. Images under 5MB on
// disk are cached by absolute path; the returned raster is always an
// independent copy, so mutating it never corrupts a later Load.
func (l *Loader) Load(path string) (*image.NRGBA, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "invalid path: %s", path)
	}

	key := l.Keyer.ImageKey(abs)
	if img, ok := l.Cache.Get(key); ok {
		return img, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "image not found: %s", abs)
	}

	decoded, err := imaging.Open(abs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFormat, err, "failed to decode image: %s", abs)
	}
	img := imaging.Clone(decoded)

	if info.Size() < loadCacheLimit {
		l.Cache.Put(key, img)
	}
	return img, nil
}

// Save writes img to path, creating parent directories as needed. The
// encoder is chosen by extension: PNG uses best compression, JPEG quality
// 90; GIF, BMP, and TIFF use their default encoders. Extensions without an
// encoder (e.g. .webp, which Go only decodes) are written as PNG data.
func (l *Loader) Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to create directory for %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestCompression))
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to save %s", path)
		}
	case ".jpg", ".jpeg":
		err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to save %s", path)
		}
	case ".gif", ".bmp", ".tif", ".tiff":
		if err := imaging.Save(img, path); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to save %s", path)
		}
	default:
		f, err := os.Create(path)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to create %s", path)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to encode %s", path)
		}
	}
	return nil
}
