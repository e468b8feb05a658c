package raster

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
)

func TestProcessBatchAllSucceed(t *testing.T) {
	paths := []string{"a", "b", "c", "d"}
	results := ProcessBatch(context.Background(), paths, 2, func(ctx context.Context, i int, path string) error {
		return nil
	})

	if len(results) != len(paths) {
		t.Fatalf("results length = %d, want %d", len(results), len(paths))
	}
	for i, ok := range results {
		if !ok {
			t.Errorf("item %d should have succeeded", i)
		}
	}
}

// One failing item must not abort its siblings.
func TestProcessBatchIsolatesFailures(t *testing.T) {
	paths := []string{"a", "bad", "c"}
	results := ProcessBatch(context.Background(), paths, 2, func(ctx context.Context, i int, path string) error {
		if path == "bad" {
			return apperrors.New(apperrors.ErrCodeFormat, "corrupt file")
		}
		return nil
	})

	want := []bool{true, false, true}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("results[%d] = %v, want %v", i, results[i], want[i])
		}
	}
}

func TestProcessBatchBoundsParallelism(t *testing.T) {
	var active, peak int32
	var mu sync.Mutex
	gate := make(chan struct{})

	go func() {
		// Release all workers once the pool is saturated or drained.
		close(gate)
	}()

	paths := make([]string, 16)
	for i := range paths {
		paths[i] = "x"
	}

	ProcessBatch(context.Background(), paths, 3, func(ctx context.Context, i int, path string) error {
		n := atomic.AddInt32(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		<-gate
		atomic.AddInt32(&active, -1)
		return nil
	})

	if peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak)
	}
}

// Cancellation is cooperative: unstarted items are marked failed without
// running the transform.
func TestProcessBatchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran int32
	paths := make([]string, 32)
	for i := range paths {
		paths[i] = "x"
	}

	results := ProcessBatch(ctx, paths, 1, func(ctx context.Context, i int, path string) error {
		if atomic.AddInt32(&ran, 1) == 2 {
			cancel()
		}
		return nil
	})

	total := int(atomic.LoadInt32(&ran))
	if total >= len(paths) {
		t.Error("cancellation should prevent some items from running")
	}

	failed := 0
	for _, ok := range results {
		if !ok {
			failed++
		}
	}
	if failed == 0 {
		t.Error("cancelled items should be reported as failed")
	}
}

func TestProcessBatchEmptyInput(t *testing.T) {
	results := ProcessBatch(context.Background(), nil, 0, func(ctx context.Context, i int, path string) error {
		t.Error("transform should not run for empty input")
		return nil
	})
	if len(results) != 0 {
		t.Errorf("results length = %d, want 0", len(results))
	}
}
