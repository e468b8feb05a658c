package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/devikontech/app-badge/pkg/badge"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
	"github.com/devikontech/app-badge/pkg/pipeline"
)

// debounceInterval is how long option edits are allowed to accumulate
// before a preview render fires. Rapid edits inside one window collapse
// into a single render.
const debounceInterval = 100 * time.Millisecond

// previewCommand creates the preview command: an interactive editor that
// re-renders the badged icon as options change.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags  badgeFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview [icon]",
		Short: "Interactively tune badge options with live re-rendering",
		Long: `Open an interactive editor for badge options.

Every edit re-renders the badged icon to the preview output file after a
short debounce, so an image viewer watching that file acts as a live
preview. Rapid edits collapse into a single render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			badgeOpts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			if output == "" {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = filepath.Join(dir, base+"-preview.png")
			}

			runner := c.newRunner(false)
			model := newPreviewModel(cmd.Context(), runner, args[0], output, badgeOpts)

			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(previewModel); ok && m.renders > 0 {
				printSuccess("Preview written")
				printFile(output)
			}
			return nil
		},
	}

	flags.register(cmd, c)
	cmd.Flags().StringVarP(&output, "output", "o", "", "preview output file (default: cache dir)")

	return cmd
}

// =============================================================================
// PreviewModel - Interactive option editing with debounced renders
// =============================================================================

// previewField identifies an editable option in the preview UI.
type previewField int

const (
	fieldText previewField = iota
	fieldGravity
	fieldShape
	fieldFontSize
	fieldShadow
	fieldOpacity
	fieldCount
)

var fieldNames = [fieldCount]string{"Text", "Gravity", "Shape", "Font size", "Shadow", "Opacity"}

// debounceMsg fires when a debounce window closes. The sequence number
// identifies the edit burst it belongs to; stale timers are ignored.
type debounceMsg struct{ seq int }

// renderDoneMsg reports a finished preview render.
type renderDoneMsg struct {
	err      error
	duration time.Duration
}

// previewModel is the bubbletea model for the preview editor.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	input  string
	output string
	opts   badge.Options

	cursor previewField

	// Debounce state: seq identifies the newest edit burst, dirty marks
	// unrendered edits, rendering guards against overlapping renders.
	seq       int
	dirty     bool
	rendering bool

	renders  int
	lastErr  error
	lastTime time.Duration
}

// newPreviewModel creates the preview model with one initial render queued.
func newPreviewModel(ctx context.Context, runner *pipeline.Runner, input, output string, opts badge.Options) previewModel {
	return previewModel{
		ctx:    ctx,
		runner: runner,
		input:  input,
		output: output,
		opts:   opts,
		dirty:  true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.scheduleRender()
}

// scheduleRender restarts the debounce timer for the current edit burst.
func (m previewModel) scheduleRender() tea.Cmd {
	seq := m.seq
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// edited marks the options dirty and restarts the debounce window.
func (m previewModel) edited() (previewModel, tea.Cmd) {
	m.dirty = true
	m.seq++
	return m, m.scheduleRender()
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		// A newer edit restarted the timer; this window is obsolete.
		if msg.seq != m.seq {
			return m, nil
		}
		if !m.dirty || m.rendering {
			return m, nil
		}
		m.dirty = false
		m.rendering = true
		return m, m.renderCmd()

	case renderDoneMsg:
		m.rendering = false
		m.renders++
		m.lastErr = msg.err
		m.lastTime = msg.duration
		// Edits arrived while rendering; open a fresh window for them.
		if m.dirty {
			m.seq++
			return m, m.scheduleRender()
		}
		return m, nil
	}
	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		m.cursor = (m.cursor + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.cursor = (m.cursor + fieldCount - 1) % fieldCount
		return m, nil
	case "left":
		return m.adjust(-1)
	case "right":
		return m.adjust(1)
	case "backspace":
		if m.cursor == fieldText && len(m.opts.Text) > 0 {
			m.opts.Text = m.opts.Text[:len(m.opts.Text)-1]
			return m.edited()
		}
		return m, nil
	}

	if m.cursor == fieldText && msg.Type == tea.KeyRunes {
		m.opts.Text += string(msg.Runes)
		return m.edited()
	}
	return m, nil
}

// adjust applies a left/right step to the focused field.
func (m previewModel) adjust(dir int) (tea.Model, tea.Cmd) {
	switch m.cursor {
	case fieldGravity:
		m.opts.Gravity = cycleGravity(m.opts.Gravity, dir)
	case fieldShape:
		m.opts.Shape = cycleShape(m.opts.Shape, dir)
	case fieldFontSize:
		m.opts.FontSize += float64(dir)
		if m.opts.FontSize < 4 {
			m.opts.FontSize = 4
		}
	case fieldShadow:
		m.opts.ShadowSize += dir
		if m.opts.ShadowSize < 0 {
			m.opts.ShadowSize = 0
		}
	case fieldOpacity:
		m.opts.Opacity += 0.05 * float64(dir)
		if m.opts.Opacity > 1 {
			m.opts.Opacity = 1
		}
		if m.opts.Opacity < 0.05 {
			m.opts.Opacity = 0.05
		}
	default:
		return m, nil
	}
	return m.edited()
}

// renderCmd runs one pipeline execution off the UI goroutine.
func (m previewModel) renderCmd() tea.Cmd {
	opts := pipeline.Options{
		Input:  m.input,
		Output: m.output,
		Badge:  m.opts,
		Logger: m.runner.Logger,
	}
	ctx := m.ctx
	runner := m.runner
	return func() tea.Msg {
		start := time.Now()
		_, err := runner.Execute(ctx, opts)
		return renderDoneMsg{err: err, duration: time.Since(start)}
	}
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Badge Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab/↑↓ field  ←→ adjust  type to edit text  esc quit"))
	b.WriteString("\n\n")

	values := [fieldCount]string{
		m.opts.Text,
		string(m.opts.Gravity),
		string(m.opts.Shape),
		fmt.Sprintf("%.0f", m.opts.FontSize),
		fmt.Sprintf("%d", m.opts.ShadowSize),
		fmt.Sprintf("%.2f", m.opts.Opacity),
	}
	for f := previewField(0); f < fieldCount; f++ {
		cursor := "  "
		line := fmt.Sprintf("%-10s %s", fieldNames[f], values[f])
		if f == m.cursor {
			cursor = "▸ "
			b.WriteString(cursor + StyleHighlight.Render(line))
		} else {
			b.WriteString(cursor + StyleValue.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.rendering:
		b.WriteString(StyleDim.Render("rendering..."))
	case m.lastErr != nil:
		b.WriteString(StyleWarning.Render(apperrors.UserMessage(m.lastErr)))
	case m.renders > 0:
		b.WriteString(StyleDim.Render(fmt.Sprintf("rendered in %s %s %s",
			m.lastTime.Round(time.Millisecond), iconArrow, m.output)))
	}
	b.WriteString("\n")

	return b.String()
}

// cycleGravity steps through the gravity list in UI order.
func cycleGravity(g badge.Gravity, dir int) badge.Gravity {
	idx := 0
	for i, candidate := range badge.Gravities {
		if candidate == g {
			idx = i
			break
		}
	}
	n := len(badge.Gravities)
	return badge.Gravities[(idx+dir+n)%n]
}

// shapeOrder is the UI cycling order for shapes.
var shapeOrder = []badge.Shape{
	badge.ShapeRectangle,
	badge.ShapeRoundedRectangle,
	badge.ShapePill,
	badge.ShapeCircle,
	badge.ShapeTriangle,
}

// cycleShape steps through the shape list in UI order.
func cycleShape(s badge.Shape, dir int) badge.Shape {
	idx := 0
	for i, candidate := range shapeOrder {
		if candidate == s {
			idx = i
			break
		}
	}
	n := len(shapeOrder)
	return shapeOrder[(idx+dir+n)%n]
}
