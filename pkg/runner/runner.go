package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Runner applies a Pipeline to every file named by Options.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and processes them on a pool of opts.Jobs workers.
// Outcomes keep discovery order. When ctx is cancelled, files not yet
// processed are left out of the result.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	slots := r.process(ctx, files, workers(opts.Jobs, len(files)), PipelineOptionsFromConfig(opts.Config))
	for _, slot := range slots {
		if slot.done {
			result.accumulate(slot.outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

type slot struct {
	outcome FileOutcome
	done    bool
}

// process fans the indices of files out to n workers. Each worker owns the
// slots it is handed, so no locking is needed on the slice.
func (r *Runner) process(ctx context.Context, files []string, n int, opts PipelineOptions) []slot {
	slots := make([]slot, len(files))
	next := make(chan int)

	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			for i := range next {
				res, err := r.Pipeline.ProcessFile(ctx, files[i], opts)
				slots[i] = slot{outcome: FileOutcome{Path: files[i], Result: res, Error: err}, done: true}
			}
		})
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case next <- i:
		}
	}
	close(next)
	wg.Wait()

	return slots
}

func workers(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}
