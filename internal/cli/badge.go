package cli

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devikontech/app-badge/pkg/badge"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
	"github.com/devikontech/app-badge/pkg/pipeline"
)

// badgeFlags collects the badge appearance flags shared by the badge,
// batch, and preview commands. Flag defaults come from the config file;
// zero values defer to the built-in defaults.
type badgeFlags struct {
	text        string
	gravity     string
	shape       string
	font        string
	fontSize    float64
	background  string
	foreground  string
	gradientEnd string
	borderColor string
	borderWidth float64
	radius      float64
	cornerRadii string
	paddingX    int
	paddingY    int
	opacity     float64
	shadowSize  int
	shadowColor string
	position    string
	along       float64
}

// register adds the badge flags to cmd, seeding defaults from settings.
func (f *badgeFlags) register(cmd *cobra.Command, c *CLI) {
	s := c.Settings.Badge
	fl := cmd.Flags()
	fl.StringVarP(&f.text, "text", "t", s.Text, "badge label (default \"DEV\")")
	fl.StringVarP(&f.gravity, "gravity", "g", s.Gravity, "anchor: north, northeast, northwest, south, southeast, southwest")
	fl.StringVar(&f.shape, "shape", s.Shape, "shape: rectangle, rounded, pill, circle, triangle")
	fl.StringVar(&f.font, "font", s.FontPath, "font file path or installed font name")
	fl.Float64Var(&f.fontSize, "font-size", s.FontSize, "label font size in points")
	fl.StringVar(&f.background, "bg", s.BackgroundColor, "background color (#rgb, #rrggbb, #rrggbbaa, rgba(...))")
	fl.StringVar(&f.foreground, "fg", s.TextColor, "label color")
	fl.StringVar(&f.gradientEnd, "gradient-end", "", "enable a linear gradient fill ending at this color")
	fl.StringVar(&f.borderColor, "border-color", "", "border color")
	fl.Float64Var(&f.borderWidth, "border-width", 0, "border stroke width in pixels")
	fl.Float64Var(&f.radius, "radius", s.BorderRadius, "corner radius for the rounded shape")
	fl.StringVar(&f.cornerRadii, "corner-radii", "", "per-corner radii tl,tr,br,bl (overrides --radius)")
	fl.IntVar(&f.paddingX, "padding-x", 0, "horizontal label padding in pixels")
	fl.IntVar(&f.paddingY, "padding-y", 0, "vertical label padding in pixels")
	fl.Float64Var(&f.opacity, "opacity", s.Opacity, "badge opacity in (0,1]")
	fl.IntVar(&f.shadowSize, "shadow", s.ShadowSize, "drop shadow blur radius in pixels (0 disables)")
	fl.StringVar(&f.shadowColor, "shadow-color", "", "drop shadow color")
	fl.StringVar(&f.position, "position", "", "manual position as x,y percentages (disables circular placement)")
	fl.Float64Var(&f.along, "along", 0, "manual position as a single percentage along the gravity axis")
}

// options converts the flags into validated badge options.
func (f *badgeFlags) options(cmd *cobra.Command) (badge.Options, error) {
	opts := badge.Options{
		Text:        f.text,
		FontPath:    f.font,
		FontSize:    f.fontSize,
		PaddingX:    f.paddingX,
		PaddingY:    f.paddingY,
		BorderWidth: f.borderWidth,
		Opacity:     f.opacity,
		ShadowSize:  f.shadowSize,
	}

	if f.gravity != "" {
		g, err := badge.ParseGravity(f.gravity)
		if err != nil {
			return opts, err
		}
		opts.Gravity = g
	}
	if f.shape != "" {
		s, err := badge.ParseShape(f.shape)
		if err != nil {
			return opts, err
		}
		opts.Shape = s
	}

	if err := setColor(&opts.BackgroundColor, f.background); err != nil {
		return opts, err
	}
	if err := setColor(&opts.TextColor, f.foreground); err != nil {
		return opts, err
	}
	if err := setColor(&opts.BorderColor, f.borderColor); err != nil {
		return opts, err
	}
	if err := setColor(&opts.ShadowColor, f.shadowColor); err != nil {
		return opts, err
	}
	if f.gradientEnd != "" {
		if err := setColor(&opts.GradientEndColor, f.gradientEnd); err != nil {
			return opts, err
		}
		opts.UseGradient = true
	}

	opts.BorderRadius = f.radius
	if f.cornerRadii != "" {
		radii, err := parseCornerRadii(f.cornerRadii)
		if err != nil {
			return opts, err
		}
		opts.CornerRadii = &radii
	}

	if f.position != "" {
		pos, err := parsePosition(f.position)
		if err != nil {
			return opts, err
		}
		opts.Position = &pos
	} else if cmd.Flags().Changed("along") {
		pos := badge.Along(f.along)
		opts.Position = &pos
	}

	err := opts.ValidateAndSetDefaults()
	return opts, err
}

// setColor parses s into dst when s is non-empty.
func setColor(dst *color.NRGBA, s string) error {
	if s == "" {
		return nil
	}
	c, err := badge.ParseColor(s)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

// parseCornerRadii parses "tl,tr,br,bl" into per-corner radii.
func parseCornerRadii(s string) (badge.CornerRadii, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return badge.CornerRadii{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			"corner radii must be four comma-separated values, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 {
			return badge.CornerRadii{}, apperrors.New(apperrors.ErrCodeInvalidInput,
				"invalid corner radius %q", p)
		}
		vals[i] = v
	}
	return badge.CornerRadii{TopLeft: vals[0], TopRight: vals[1], BottomRight: vals[2], BottomLeft: vals[3]}, nil
}

// parsePosition parses "x,y" percentages into a manual position.
func parsePosition(s string) (badge.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return badge.Position{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			"position must be x,y percentages, got %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return badge.Position{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid position %q", s)
	}
	return badge.At(x, y), nil
}

// badgeCommand creates the badge command for stamping a single icon.
func (c *CLI) badgeCommand() *cobra.Command {
	var (
		flags   badgeFlags
		output  string
		inPlace bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "badge [icon]",
		Short: "Overlay a badge on a single icon",
		Long: `Overlay a text badge on a single app icon.

By default the result is written next to the input with a "-badge" suffix;
use --output for an explicit destination or --in-place to overwrite the
input file. PNG, JPEG, GIF, BMP, TIFF, and WebP inputs are accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			badgeOpts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Input:   args[0],
				Output:  output,
				InPlace: inPlace,
				Badge:   badgeOpts,
				Logger:  loggerFromContext(cmd.Context()),
			}

			runner := c.newRunner(noCache)
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				printError("Badge failed: %s", apperrors.UserMessage(err))
				return err
			}

			printSuccess("Badged %s", args[0])
			printRenderStats(result.Width, result.Height, result.CacheInfo.ImageHit)
			printFile(result.Output)
			return nil
		},
	}

	flags.register(cmd, c)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
