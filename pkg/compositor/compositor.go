// Package compositor renders a text badge and composites it onto an icon.
//
// The render path is: measure the icon's content insets, derive a scale
// factor against the 192px reference design size, rasterize the badge
// (shape fill, optional gradient, border, label), apply the drop shadow,
// compute the placement, rotate, and draw everything onto a fresh canvas.
// Finished badge rasters and shadow layers are cached by fingerprint so
// interactive previews only pay for compositing.
package compositor

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/devikontech/app-badge/pkg/badge"
	"github.com/devikontech/app-badge/pkg/cache"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
	"github.com/devikontech/app-badge/pkg/fonts"
	"github.com/devikontech/app-badge/pkg/observability"
	"github.com/devikontech/app-badge/pkg/raster"
	"github.com/devikontech/app-badge/pkg/shape"
)

// referenceSize is the icon content width the default option values are
// designed against. Icons with other content widths get options scaled by
// contentWidth / referenceSize.
const referenceSize = 192.0

// Renderer composites badges onto icons. The zero value is not usable;
// construct with NewRenderer.
type Renderer struct {
	Badges cache.Store
	Keyer  cache.Keyer
	Fonts  *fonts.Cache
	Shadow *raster.Shadower
	Logger *log.Logger
}

// NewRenderer creates a renderer. Nil stores disable the corresponding
// cache; a nil keyer or logger gets the package default.
func NewRenderer(badges, shadows cache.Store, keyer cache.Keyer, fontCache *fonts.Cache, logger *log.Logger) *Renderer {
	if badges == nil {
		badges = cache.NewNull()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if fontCache == nil {
		fontCache = fonts.NewCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		Badges: badges,
		Keyer:  keyer,
		Fonts:  fontCache,
		Shadow: raster.NewShadower(shadows, keyer),
		Logger: logger,
	}
}

// Render returns a new image the size of src with the configured badge
// composited on top. The source is never mutated.
func (r *Renderer) Render(ctx context.Context, src *image.NRGBA, opts badge.Options) (*image.NRGBA, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, apperrors.New(apperrors.ErrCodeDegenerateInput, "source image has zero area")
	}

	// Content width drives both the option scale and the placement circle.
	east := raster.FindInset(src, raster.EdgeEast)
	west := raster.FindInset(src, raster.EdgeWest)
	insetWidth := srcW - east - west
	if insetWidth <= 0 {
		insetWidth = srcW
	}

	scaled := opts.Scaled(float64(insetWidth) / referenceSize)

	badgeImg, err := r.renderBadge(ctx, scaled)
	if err != nil {
		return nil, err
	}

	if scaled.ShadowSize > 0 {
		badgeImg = r.Shadow.Apply(badgeImg, scaled.ShadowColor, scaled.ShadowSize)
	}

	bb := badgeImg.Bounds()
	var placement badge.Placement
	if scaled.Position != nil {
		placement = badge.CalculateManual(srcW, srcH, bb.Dx(), bb.Dy(), *scaled.Position, scaled.Gravity)
	} else {
		placement = badge.CalculateCircular(srcW, srcH, bb.Dx(), bb.Dy(), float64(insetWidth)/2, scaled.Gravity)
	}

	rotated := raster.Rotate(badgeImg, placement.Rotation)

	out := raster.NewTransparent(srcW, srcH)
	raster.Over(out, src, 0, 0)
	r.compositeBadge(out, rotated, placement.Point, scaled.Opacity)

	r.Logger.Debug("badge composited",
		"w", bb.Dx(), "h", bb.Dy(),
		"x", placement.Point.X, "y", placement.Point.Y,
		"rotation", placement.Rotation,
		"scale", float64(insetWidth)/referenceSize)
	return out, nil
}

// compositeBadge draws the rotated badge at pt, applying a global opacity
// through a uniform alpha mask when opacity < 1.
func (r *Renderer) compositeBadge(dst, b *image.NRGBA, pt badge.Point, opacity float64) {
	bb := b.Bounds()
	rect := image.Rect(pt.X, pt.Y, pt.X+bb.Dx(), pt.Y+bb.Dy())
	if opacity >= 1 {
		draw.Draw(dst, rect, b, bb.Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, rect, b, bb.Min, mask, image.Point{}, draw.Over)
}

// renderBadge rasterizes the badge itself: shape outline, fill (solid or
// gradient), border stroke, and centered label. Results are cached by the
// full option fingerprint.
func (r *Renderer) renderBadge(ctx context.Context, opts badge.Options) (*image.NRGBA, error) {
	font, err := r.resolveFont(opts)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(font, &truetype.Options{Size: opts.FontSize})

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	textW, textH := measure.MeasureString(opts.Text)

	w, h := badgeSize(opts, textW, textH)

	key := r.Keyer.BadgeKey(badgeKeyOpts(opts))
	if img, ok := r.Badges.Get(key); ok {
		observability.Cache().OnCacheHit(ctx, "badge")
		return img, nil
	}
	observability.Cache().OnCacheMiss(ctx, "badge")

	dc := gg.NewContext(int(math.Ceil(w)), int(math.Ceil(h)))
	shape.Outline(dc, w, h, opts.Shape, opts.Radii())

	if opts.UseGradient {
		grad := gg.NewLinearGradient(0, 0, w, h)
		grad.AddColorStop(0, opts.BackgroundColor)
		grad.AddColorStop(1, opts.GradientEndColor)
		dc.SetFillStyle(grad)
	} else {
		dc.SetColor(opts.BackgroundColor)
	}

	if opts.BorderWidth > 0 {
		dc.FillPreserve()
		dc.SetColor(opts.BorderColor)
		dc.SetLineWidth(opts.BorderWidth)
		dc.Stroke()
	} else {
		dc.Fill()
	}

	dc.SetFontFace(face)
	dc.SetColor(opts.TextColor)
	dc.DrawStringAnchored(opts.Text, w/2, h/2, 0.5, 0.5)

	img := raster.Clone(dc.Image())
	r.Badges.Put(key, img)
	return img, nil
}

// badgeSize computes the badge raster dimensions for the text extents.
// Circles are square around the larger text dimension; pills widen by half
// their height so the rounded caps clear the label.
func badgeSize(opts badge.Options, textW, textH float64) (w, h float64) {
	switch opts.Shape {
	case badge.ShapeCircle:
		side := math.Max(textW, textH) + 2*float64(maxInt(opts.PaddingX, opts.PaddingY))
		return side, side
	case badge.ShapePill:
		h = textH + 2*float64(opts.PaddingY)
		w = textW + 2*float64(opts.PaddingX) + h/2
		return w, h
	default:
		return textW + 2*float64(opts.PaddingX), textH + 2*float64(opts.PaddingY)
	}
}

// resolveFont applies the font precedence: parsed font, then path, then the
// embedded default.
func (r *Renderer) resolveFont(opts badge.Options) (*truetype.Font, error) {
	if opts.Font != nil {
		return opts.Font, nil
	}
	if opts.FontPath != "" {
		return r.Fonts.Load(opts.FontPath)
	}
	return fonts.Default()
}

// badgeKeyOpts flattens the render-relevant option fields into the cache
// fingerprint shape.
func badgeKeyOpts(opts badge.Options) cache.BadgeKeyOpts {
	radii := opts.Radii()
	key := cache.BadgeKeyOpts{
		Text:            opts.Text,
		BackgroundColor: badge.FormatColor(opts.BackgroundColor),
		TextColor:       badge.FormatColor(opts.TextColor),
		FontSize:        opts.FontSize,
		FontPath:        opts.FontPath,
		Shape:           string(opts.Shape),
		Radii:           formatRadii(radii),
		PaddingX:        opts.PaddingX,
		PaddingY:        opts.PaddingY,
	}
	if opts.BorderWidth > 0 {
		key.BorderColor = badge.FormatColor(opts.BorderColor)
		key.BorderWidth = opts.BorderWidth
	}
	if opts.UseGradient {
		key.UseGradient = true
		key.GradientEndColor = badge.FormatColor(opts.GradientEndColor)
	}
	return key
}

func formatRadii(r badge.CornerRadii) string {
	return strconv.FormatFloat(r.TopLeft, 'g', -1, 64) + "," +
		strconv.FormatFloat(r.TopRight, 'g', -1, 64) + "," +
		strconv.FormatFloat(r.BottomRight, 'g', -1, 64) + "," +
		strconv.FormatFloat(r.BottomLeft, 'g', -1, 64)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
