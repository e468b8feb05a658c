// Package fonts resolves and parses the TrueType fonts used for badge text.
//
// Resolution order matches the badge options contract: an explicitly parsed
// font object wins, then a font file path, then the embedded default
// (Go Regular, compiled into the binary), and finally a system font located
// by name. Parsed fonts are cached per path; parsing the same font for
// every preview frame would dominate render time.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

var (
	defaultOnce sync.Once
	defaultFont *truetype.Font
	defaultErr  error
)

// Default returns the embedded default font.
func Default() (*truetype.Font, error) {
	defaultOnce.Do(func() {
		defaultFont, defaultErr = truetype.Parse(goregular.TTF)
		if defaultErr != nil {
			// The embedded resource should always parse; fall back to a
			// generic system sans if it somehow does not.
			if path, err := findfont.Find("DejaVuSans.ttf"); err == nil {
				if data, err := os.ReadFile(path); err == nil {
					defaultFont, defaultErr = truetype.Parse(data)
				}
			}
		}
		if defaultErr != nil {
			defaultErr = apperrors.Wrap(apperrors.ErrCodeFont, defaultErr, "no usable default font")
		}
	})
	return defaultFont, defaultErr
}

// Cache parses TrueType fonts and memoizes them by path.
// Entries are write-once-per-key; a later parse simply overwrites.
type Cache struct {
	mu    sync.RWMutex
	fonts map[string]*truetype.Font
}

// NewCache creates an empty font cache.
func NewCache() *Cache {
	return &Cache{fonts: make(map[string]*truetype.Font)}
}

// Load parses the TrueType font at path. If path does not exist on disk it
// is treated as a font name and located through the system font directories.
func (c *Cache) Load(path string) (*truetype.Font, error) {
	c.mu.RLock()
	f, ok := c.fonts[path]
	c.mu.RUnlock()
	if ok {
		return f, nil
	}

	resolved := path
	if _, err := os.Stat(path); err != nil {
		found, ferr := findfont.Find(path)
		if ferr != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFont, err, "font not found: %s", path)
		}
		resolved = found
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to read font: %s", resolved)
	}

	f, err = truetype.Parse(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFont, err, "failed to parse font: %s", resolved)
	}

	c.mu.Lock()
	c.fonts[path] = f
	c.mu.Unlock()
	return f, nil
}

// Clear drops all cached fonts.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.fonts = make(map[string]*truetype.Font)
	c.mu.Unlock()
}

// Len reports the number of cached fonts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fonts)
}
