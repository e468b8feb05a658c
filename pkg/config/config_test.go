package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devikontech/app-badge/pkg/badge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileIsZero(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("missing file should load zero settings, got %+v", s)
	}
}

func TestLoadParsesSettings(t *testing.T) {
	path := writeConfig(t, `
[badge]
text = "BETA"
gravity = "northwest"
shape = "pill"
font_size = 32.0
background_color = "#2196F3"
text_color = "#fff"
border_radius = 6.0
shadow_size = 2
opacity = 0.9

[cache]
disabled = true
max_entry_pixels = 500000
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Badge.Text != "BETA" || s.Badge.Gravity != "northwest" || s.Badge.Shape != "pill" {
		t.Errorf("badge settings = %+v", s.Badge)
	}
	if s.Badge.FontSize != 32 || s.Badge.ShadowSize != 2 || s.Badge.Opacity != 0.9 {
		t.Errorf("numeric settings = %+v", s.Badge)
	}
	if !s.Cache.Disabled || s.Cache.MaxEntryPixels != 500000 {
		t.Errorf("cache settings = %+v", s.Cache)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[badge\ntext=")
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestBadgeOptionsConversion(t *testing.T) {
	s := Settings{
		Badge: BadgeSettings{
			Text:            "BETA",
			Gravity:         "south",
			Shape:           "circle",
			BackgroundColor: "#2196F3",
			TextColor:       "#000",
			FontSize:        32,
		},
	}

	opts, err := s.BadgeOptions()
	if err != nil {
		t.Fatalf("BadgeOptions: %v", err)
	}
	if opts.Text != "BETA" || opts.Gravity != badge.GravitySouth || opts.Shape != badge.ShapeCircle {
		t.Errorf("converted options = %+v", opts)
	}
	if opts.BackgroundColor.B != 0xF3 {
		t.Errorf("background = %+v, want #2196F3", opts.BackgroundColor)
	}
}

func TestBadgeOptionsZeroDefersToDefaults(t *testing.T) {
	opts, err := Settings{}.BadgeOptions()
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Text != badge.DefaultText {
		t.Errorf("Text = %q, want built-in default", opts.Text)
	}
}

// Config file typos surface as errors instead of silently falling back.
func TestBadgeOptionsStrictColors(t *testing.T) {
	s := Settings{Badge: BadgeSettings{BackgroundColor: "not-a-color"}}
	if _, err := s.BadgeOptions(); err == nil {
		t.Error("malformed config color should fail")
	}

	s = Settings{Badge: BadgeSettings{Gravity: "middle"}}
	if _, err := s.BadgeOptions(); err == nil {
		t.Error("malformed config gravity should fail")
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	want := filepath.Join("/tmp/xdg-test", "appbadge", FileName)
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
