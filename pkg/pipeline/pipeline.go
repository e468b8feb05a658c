// Package pipeline provides the core badging pipeline.
//
// This package implements the complete load → render → save pipeline shared
// by the CLI commands and the preview UI. Centralizing it keeps caching and
// error handling consistent across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the source icon into memory (cached by absolute path)
//  2. Render: Rasterize the badge and composite it onto the icon
//  3. Save: Encode the result to the output path
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(pipeline.Caches{}, nil, logger)
//	opts := pipeline.Options{
//	    Input: "res/icon.png",
//	    Badge: badge.Options{Text: "BETA"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
//
// Batch runs fan the same Execute over many inputs with a bounded worker
// pool; per-item failures are isolated and reported in the batch result.
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/devikontech/app-badge/pkg/badge"
	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

// DefaultOutputSuffix is appended to the input file name when no explicit
// output path is configured and in-place writing is disabled.
const DefaultOutputSuffix = "-badge"

// Options contains all configuration for a single pipeline run.
type Options struct {
	// Input is the source icon path. Required.
	Input string `json:"input"`

	// Output is the destination path. Empty means write alongside the input
	// with the default suffix; set InPlace to overwrite the input instead.
	Output string `json:"output,omitempty"`

	// InPlace overwrites the input file. Ignored when Output is set.
	InPlace bool `json:"in_place,omitempty"`

	// Badge is the badge configuration applied to the icon.
	Badge badge.Options `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Output is the path the badged icon was written to.
	Output string

	// Width and Height are the output dimensions in pixels.
	Width  int
	Height int

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
	SaveTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ImageHit bool // Whether the source image came from cache
}

// BatchResult contains the outcome of a batch run.
type BatchResult struct {
	// JobID is a unique identifier for this batch run, used in logs.
	JobID string

	// Succeeded and Total count the per-item outcomes.
	Succeeded int
	Total     int

	// Items holds the per-input outcome in input order.
	Items []BatchItem

	// Duration is the wall-clock time of the whole batch.
	Duration time.Duration
}

// BatchItem is the outcome of one input within a batch.
type BatchItem struct {
	Input  string
	Output string
	Err    error
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "input path is required")
	}
	if o.Output == "" {
		if o.InPlace {
			o.Output = o.Input
		} else {
			o.Output = derivedOutput(o.Input)
		}
	}
	if err := o.Badge.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// derivedOutput returns the default output path for an input: the same
// directory and extension with the default suffix before the extension.
func derivedOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + DefaultOutputSuffix + ext
}
