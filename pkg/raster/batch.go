package raster

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ProcessBatch applies transform to every path concurrently across a worker
// pool bounded by the available hardware parallelism. Each item's failure is
// isolated: one bad file never aborts its siblings. The returned slice holds
// a per-item success flag in input order.
//
// Cancellation is cooperative: once ctx is done, unstarted items are marked
// failed without invoking the transform; items already in flight finish.
func ProcessBatch(ctx context.Context, paths []string, parallelism int, transform func(ctx context.Context, i int, path string) error) []bool {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	results := make([]bool, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = transform(ctx, i, path) == nil
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return results
}
