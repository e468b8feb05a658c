package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/devikontech/app-badge/pkg/cache"
	"github.com/devikontech/app-badge/pkg/compositor"
	"github.com/devikontech/app-badge/pkg/fonts"
	"github.com/devikontech/app-badge/pkg/observability"
	"github.com/devikontech/app-badge/pkg/raster"
)

// Caches bundles the stores used by the pipeline stages. Any nil store
// disables caching for that stage.
type Caches struct {
	Images  cache.Store
	Badges  cache.Store
	Shadows cache.Store
}

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the caches and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Loader   *raster.Loader
	Renderer *compositor.Renderer
	Keyer    cache.Keyer
	Logger   *log.Logger

	images cache.Store
}

// NewRunner creates a runner with the given caches and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If a cache store is nil, that stage's caching is disabled.
func NewRunner(caches Caches, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	images := caches.Images
	if images == nil {
		images = cache.NewNull()
	}
	return &Runner{
		Loader:   raster.NewLoader(images, keyer),
		Renderer: compositor.NewRenderer(caches.Badges, caches.Shadows, keyer, fonts.NewCache(), logger),
		Keyer:    keyer,
		Logger:   logger,
		images:   images,
	}
}

// Execute runs the complete load → render → save pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Input)

	result := &Result{Output: opts.Output}

	// Stage 1: Load
	loadStart := time.Now()
	if abs, err := filepath.Abs(opts.Input); err == nil {
		_, result.CacheInfo.ImageHit = r.images.Get(r.Keyer.ImageKey(abs))
	}
	src, err := r.Loader.Load(opts.Input)
	if err != nil {
		observability.Render().OnRenderComplete(ctx, opts.Input, time.Since(start), err)
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	b := src.Bounds()
	result.Width, result.Height = b.Dx(), b.Dy()
	opts.Logger.Debug("loaded icon",
		"path", opts.Input,
		"w", result.Width, "h", result.Height,
		"cache_hit", result.CacheInfo.ImageHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	out, err := r.Renderer.Render(ctx, src, opts.Badge)
	if err != nil {
		observability.Render().OnRenderComplete(ctx, opts.Input, time.Since(start), err)
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("badged icon",
		"text", opts.Badge.Text,
		"gravity", string(opts.Badge.Gravity),
		"duration", result.Stats.RenderTime)

	// Stage 3: Save
	saveStart := time.Now()
	if err := r.Loader.Save(out, opts.Output); err != nil {
		observability.Render().OnRenderComplete(ctx, opts.Input, time.Since(start), err)
		return nil, err
	}
	result.Stats.SaveTime = time.Since(saveStart)

	opts.Logger.Info("wrote output",
		"path", opts.Output,
		"duration", result.Stats.SaveTime)

	observability.Render().OnRenderComplete(ctx, opts.Input, time.Since(start), nil)
	return result, nil
}

// Batch runs Execute over every input with a bounded worker pool. Each
// item's failure is isolated; the batch always runs to completion unless
// ctx is cancelled, in which case unstarted items fail with the context
// error. The badge and output settings from opts apply to every item; the
// per-item output path is always derived from the item's input path.
func (r *Runner) Batch(ctx context.Context, inputs []string, opts Options, parallelism int) *BatchResult {
	jobID := uuid.NewString()
	start := time.Now()

	result := &BatchResult{
		JobID: jobID,
		Total: len(inputs),
		Items: make([]BatchItem, len(inputs)),
	}

	logger := r.Logger.With("job", jobID)
	logger.Info("starting batch", "inputs", len(inputs), "parallelism", parallelism)

	ok := raster.ProcessBatch(ctx, inputs, parallelism, func(ctx context.Context, i int, path string) error {
		itemOpts := opts
		itemOpts.Input = path
		itemOpts.Output = ""
		itemOpts.Logger = logger.With("input", path)
		// Re-run validation so the per-item output path is derived.
		itemOpts.validated = false

		res, err := r.Execute(ctx, itemOpts)
		result.Items[i].Input = path
		result.Items[i].Err = err
		if err != nil {
			logger.Error("batch item failed", "input", path, "err", err)
			return err
		}
		result.Items[i].Output = res.Output
		return nil
	})

	for i, success := range ok {
		if success {
			result.Succeeded++
		} else if result.Items[i].Err == nil {
			// Item never started: the batch was cancelled first.
			result.Items[i].Input = inputs[i]
			result.Items[i].Err = ctx.Err()
		}
	}
	result.Duration = time.Since(start)

	logger.Info("batch complete",
		"succeeded", result.Succeeded,
		"total", result.Total,
		"duration", result.Duration)
	observability.Render().OnBatchComplete(ctx, jobID, result.Succeeded, result.Total, result.Duration)
	return result
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
