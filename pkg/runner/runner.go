package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdlite/internal/logging"
	"github.com/yaklabco/mdlite/pkg/config"
	"github.com/yaklabco/mdlite/pkg/convert"
)

// Runner orchestrates multi-file conversion using a convert.Pipeline.
type Runner struct {
	// Pipeline converts a single file. It is shared by all workers.
	Pipeline *convert.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *convert.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and converts them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
//
// A failing file does not stop the run; its error is recorded in its
// outcome. Only cancellation of ctx ends the run early.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if cfg.OutputDir != "" && cfg.SourceRoot == "" {
		workDir, err := resolveWorkDir(opts.WorkingDir)
		if err != nil {
			return nil, err
		}
		rooted := *cfg
		rooted.SourceRoot = workDir
		cfg = &rooted
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcome := FileOutcome{Path: path}
			res, err := r.Pipeline.ConvertFile(groupCtx, path, cfg)
			if err != nil {
				outcome.Error = fmt.Errorf("%s: %w", path, err)
				logger.Debug("conversion failed", logging.FieldPath, path, logging.FieldError, err)
			} else {
				outcome.Result = res
			}

			outcomes[i] = outcome
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	return result, nil
}
