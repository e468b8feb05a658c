// Package config loads persistent appbadge settings from a TOML file.
//
// Settings hold the user's preferred badge defaults so repeated invocations
// do not need the full flag set. Values from the file seed badge options;
// explicit flags always win over file values, which win over the built-in
// defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/devikontech/app-badge/pkg/badge"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// FileName is the settings file name inside the config directory.
const FileName = "config.toml"

// Settings is the on-disk configuration schema.
type Settings struct {
	Badge BadgeSettings `toml:"badge"`
	Cache CacheSettings `toml:"cache"`
}

// BadgeSettings carries the user's default badge appearance. Every field is
// optional; zero values defer to the built-in defaults.
type BadgeSettings struct {
	Text            string  `toml:"text"`
	Gravity         string  `toml:"gravity"`
	Shape           string  `toml:"shape"`
	FontPath        string  `toml:"font"`
	FontSize        float64 `toml:"font_size"`
	BackgroundColor string  `toml:"background_color"`
	TextColor       string  `toml:"text_color"`
	BorderRadius    float64 `toml:"border_radius"`
	ShadowSize      int     `toml:"shadow_size"`
	Opacity         float64 `toml:"opacity"`
}

// CacheSettings controls the in-memory raster caches.
type CacheSettings struct {
	// Disabled turns all caching off.
	Disabled bool `toml:"disabled"`

	// MaxEntryPixels caps the pixel area a single cached raster may hold.
	// Zero means the built-in default.
	MaxEntryPixels int `toml:"max_entry_pixels"`
}

// DefaultPath returns the standard settings file location:
// $XDG_CONFIG_HOME/appbadge/config.toml, falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "appbadge", FileName)
}

// Load reads settings from path. A missing file is not an error: it returns
// zero settings so the built-in defaults apply.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, apperrors.Wrap(apperrors.ErrCodeIO, err, "failed to read config: %s", path)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, apperrors.Wrap(apperrors.ErrCodeFormat, err, "failed to parse config: %s", path)
	}
	return s, nil
}

// LoadDefault reads settings from the standard location.
func LoadDefault() (Settings, error) {
	path := DefaultPath()
	if path == "" {
		return Settings{}, nil
	}
	return Load(path)
}

// BadgeOptions converts the file settings into badge options, leaving unset
// fields zero so ValidateAndSetDefaults fills in the built-in defaults.
// Color strings are parsed strictly: a malformed color is an error rather
// than a silent fallback, since a config file typo should be surfaced.
func (s Settings) BadgeOptions() (badge.Options, error) {
	opts := badge.Options{
		Text:         s.Badge.Text,
		FontPath:     s.Badge.FontPath,
		FontSize:     s.Badge.FontSize,
		BorderRadius: s.Badge.BorderRadius,
		ShadowSize:   s.Badge.ShadowSize,
		Opacity:      s.Badge.Opacity,
	}

	if s.Badge.Gravity != "" {
		g, err := badge.ParseGravity(s.Badge.Gravity)
		if err != nil {
			return opts, err
		}
		opts.Gravity = g
	}
	if s.Badge.Shape != "" {
		sh, err := badge.ParseShape(s.Badge.Shape)
		if err != nil {
			return opts, err
		}
		opts.Shape = sh
	}
	if s.Badge.BackgroundColor != "" {
		c, err := badge.ParseColor(s.Badge.BackgroundColor)
		if err != nil {
			return opts, err
		}
		opts.BackgroundColor = c
	}
	if s.Badge.TextColor != "" {
		c, err := badge.ParseColor(s.Badge.TextColor)
		if err != nil {
			return opts, err
		}
		opts.TextColor = c
	}
	return opts, nil
}
