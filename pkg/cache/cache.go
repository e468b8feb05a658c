// Package cache provides the in-process caches used by the rendering
// pipeline: loaded images, blurred shadows, and finished badge rasters.
//
// Caches are injected services rather than ambient singletons so tests can
// substitute isolated instances. Entries are keyed by content fingerprints
// (see Keyer), accumulate until an explicit Clear, and are bounded per entry
// by a pixel ceiling rather than by a total-size eviction policy.
//
// Both Put and Get copy pixel data, so a caller mutating a raster it loaded
// or received can never corrupt the cached entry.
package cache

import (
	"image"
	"sync"
)

// Store is a concurrent cache of rasters keyed by fingerprint strings.
// Entries are write-once-per-key in practice; later writes simply overwrite.
type Store interface {
	// Get returns an independent copy of the cached raster, if present.
	Get(key string) (*image.NRGBA, bool)

	// Put stores an independent copy of img under key. Oversized entries
	// are silently rejected.
	Put(key string, img *image.NRGBA)

	// Clear drops all entries.
	Clear()

	// Len reports the number of cached entries.
	Len() int
}

// Memory is the default Store backed by a mutex-guarded map.
type Memory struct {
	mu             sync.RWMutex
	entries        map[string]*image.NRGBA
	maxEntryPixels int
}

// DefaultMaxEntryPixels bounds a single cache entry to roughly a 5MB RGBA
// raster (1.25M pixels at 4 bytes each).
const DefaultMaxEntryPixels = 1 << 20

// NewMemory creates an in-memory store. maxEntryPixels bounds the pixel
// count of a single entry; zero applies DefaultMaxEntryPixels and a negative
// value disables the ceiling.
func NewMemory(maxEntryPixels int) *Memory {
	if maxEntryPixels == 0 {
		maxEntryPixels = DefaultMaxEntryPixels
	}
	return &Memory{
		entries:        make(map[string]*image.NRGBA),
		maxEntryPixels: maxEntryPixels,
	}
}

// Get returns an independent copy of the cached raster, if present.
func (m *Memory) Get(key string) (*image.NRGBA, bool) {
	m.mu.RLock()
	img, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return cloneNRGBA(img), true
}

// Put stores an independent copy of img under key.
func (m *Memory) Put(key string, img *image.NRGBA) {
	if img == nil {
		return
	}
	if m.maxEntryPixels > 0 {
		b := img.Bounds()
		if b.Dx()*b.Dy() > m.maxEntryPixels {
			return
		}
	}
	clone := cloneNRGBA(img)
	m.mu.Lock()
	m.entries[key] = clone
	m.mu.Unlock()
}

// Clear drops all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]*image.NRGBA)
	m.mu.Unlock()
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// cloneNRGBA deep-copies a raster so cache and caller never share pixels.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
