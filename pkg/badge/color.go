package badge

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// Black is the fallback value for malformed color strings.
var Black = color.NRGBA{A: 255}

// ParseColor parses a color string into an NRGBA value. Supported forms:
//
//	#RGB        each hex digit doubled
//	#RRGGBB     opaque
//	#RRGGBBAA   with alpha
//	rgba(r,g,b,a)  r/g/b in 0-255, a in [0,1] scaled to 0-255
//
// Malformed strings fall back to opaque black alongside the error, so
// callers that ignore the error still get a usable color.
func ParseColor(s string) (color.NRGBA, error) {
	t := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(t, "#"):
		return parseHexColor(t)
	case strings.HasPrefix(strings.ToLower(t), "rgba(") && strings.HasSuffix(t, ")"):
		return parseRGBAColor(t)
	}
	return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid color string: %q", s)
}

// FormatColor renders a color as #rrggbb, or #rrggbbaa when not fully opaque.
// ParseColor(FormatColor(c)) == c for every NRGBA value.
func FormatColor(c color.NRGBA) string {
	base := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	if c.A == 255 {
		return base
	}
	return fmt.Sprintf("%s%02x", base, c.A)
}

func parseHexColor(t string) (color.NRGBA, error) {
	hex := t
	alpha := uint8(255)

	switch len(t) {
	case 4: // #RGB, each digit doubled
		hex = fmt.Sprintf("#%c%c%c%c%c%c", t[1], t[1], t[2], t[2], t[3], t[3])
	case 7: // #RRGGBB
	case 9: // #RRGGBBAA
		a, err := strconv.ParseUint(t[7:9], 16, 8)
		if err != nil {
			return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid alpha in color: %q", t)
		}
		alpha = uint8(a)
		hex = t[:7]
	default:
		return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid hex color: %q", t)
	}

	parsed, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid hex color: %q", t)
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseRGBAColor(t string) (color.NRGBA, error) {
	inner := t[strings.Index(t, "(")+1 : len(t)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid rgba color: %q", t)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid rgba channel in %q", t)
		}
		channels[i] = uint8(v)
	}

	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return Black, apperrors.New(apperrors.ErrCodeInvalidColor, "invalid rgba alpha in %q", t)
	}

	return color.NRGBA{
		R: channels[0],
		G: channels[1],
		B: channels[2],
		A: uint8(a*255 + 0.5),
	}, nil
}
