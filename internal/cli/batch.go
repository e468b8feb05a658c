package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	apperrors "github.com/devikontech/app-badge/pkg/errors"
	"github.com/devikontech/app-badge/pkg/pipeline"
)

// batchCommand creates the batch command for badging many icons at once.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags       badgeFlags
		inPlace     bool
		noCache     bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "batch [glob...]",
		Short: "Overlay badges on all icons matching the globs",
		Long: `Overlay the same badge on every icon matching the given glob patterns.

Icons are processed concurrently on a bounded worker pool. A failing icon
never aborts the rest of the batch; the summary reports how many succeeded.
Each output is written next to its input with a "-badge" suffix unless
--in-place is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := expandGlobs(args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				printWarning("No files match")
				return nil
			}

			badgeOpts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				InPlace: inPlace,
				Badge:   badgeOpts,
				Logger:  loggerFromContext(cmd.Context()),
			}

			runner := c.newRunner(noCache)
			p := newProgress(c.Logger)

			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Badging %d icons...", len(inputs)))
			spinner.Start()
			result := runner.Batch(cmd.Context(), inputs, opts, parallelism)
			spinner.Stop()

			p.done(fmt.Sprintf("Badged %d of %d icons", result.Succeeded, result.Total))

			for _, item := range result.Items {
				if item.Err != nil {
					printError("%s: %s", item.Input, apperrors.UserMessage(item.Err))
				}
			}
			if result.Succeeded == result.Total {
				printSuccess("%d of %d succeeded", result.Succeeded, result.Total)
				return nil
			}
			printWarning("%d of %d succeeded", result.Succeeded, result.Total)
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			return nil
		},
	}

	flags.register(cmd, c)
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "overwrite the input files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "worker count (default: number of CPUs)")

	return cmd
}

// expandGlobs resolves glob patterns into a sorted, de-duplicated file list.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "invalid glob: %s", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}
