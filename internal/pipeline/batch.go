package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs an input with its outcome. Exactly one of Result and Err
// is set.
type BatchResult struct {
	RepoURL string
	Result  *Result
	Err     error
}

// RunBatch runs independent generations with at most limit in flight. Each
// generation is itself sequential; a failure is recorded and does not stop
// the others. Results are returned in input order.
func RunBatch(ctx context.Context, inputs []Input, limit int, opts Options) []BatchResult {
	if limit < 1 {
		limit = 1
	}
	opts = opts.withDefaults()
	progress := opts.Progress

	results := make([]BatchResult, len(inputs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			o := opts
			o.Progress = func(step string, percent int) {
				progress(in.RepoURL+": "+step, percent)
			}
			res, err := Run(gCtx, in, o)
			results[i] = BatchResult{RepoURL: in.RepoURL, Result: res, Err: err}
			return nil // continue with other repos
		})
	}

	_ = g.Wait()
	return results
}
