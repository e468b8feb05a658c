package cache

// Keyer builds cache keys from the salient fields of a request. Centralizing
// key construction keeps fingerprints consistent between the compositor and
// the CLI, and lets tests assert key sensitivity field by field.
type Keyer interface {
	// ImageKey generates a key for a loaded source image.
	ImageKey(path string) string

	// BadgeKey generates a key for a finished badge raster.
	BadgeKey(opts BadgeKeyOpts) string

	// ShadowKey generates a key for a blurred shadow raster.
	ShadowKey(opts ShadowKeyOpts) string

	// FontKey generates a key for a parsed font.
	FontKey(path string) string
}

// BadgeKeyOpts carries every field that affects badge rasterization.
// Two option sets producing the same BadgeKeyOpts render identical badges.
type BadgeKeyOpts struct {
	Text             string  `json:"text"`
	BackgroundColor  string  `json:"bg"`
	TextColor        string  `json:"fg"`
	FontSize         float64 `json:"font_size"`
	FontPath         string  `json:"font,omitempty"`
	Shape            string  `json:"shape"`
	Radii            string  `json:"radii"`
	BorderColor      string  `json:"border_color,omitempty"`
	BorderWidth      float64 `json:"border_width,omitempty"`
	UseGradient      bool    `json:"gradient,omitempty"`
	GradientEndColor string  `json:"gradient_end,omitempty"`
	PaddingX         int     `json:"pad_x"`
	PaddingY         int     `json:"pad_y"`
}

// ShadowKeyOpts carries every field that affects shadow generation.
type ShadowKeyOpts struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Color  string `json:"color"`
	Blur   int    `json:"blur"`
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ImageKey generates a key for a loaded source image, keyed by absolute path.
func (k *DefaultKeyer) ImageKey(path string) string {
	return "image:" + path
}

// BadgeKey generates a key for a finished badge raster.
func (k *DefaultKeyer) BadgeKey(opts BadgeKeyOpts) string {
	return hashKey("badge", opts)
}

// ShadowKey generates a key for a blurred shadow raster.
func (k *DefaultKeyer) ShadowKey(opts ShadowKeyOpts) string {
	return hashKey("shadow", opts)
}

// FontKey generates a key for a parsed font, keyed by absolute path.
func (k *DefaultKeyer) FontKey(path string) string {
	return "font:" + path
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
