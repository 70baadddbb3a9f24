package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalyzeAll analyzes many texts concurrently with at most jobs workers.
// Results keep the order of texts. If jobs is not positive, it defaults to
// runtime.NumCPU(). The only error it returns comes from ctx.
func (e *Engine) AnalyzeAll(
	ctx context.Context,
	texts []string,
	jobs int,
) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	res := make([]Result, len(texts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i := range texts {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res[i] = e.Analyze(texts[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
