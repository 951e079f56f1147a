package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hexamon/hexaswag/internal/consolidate"
)

// resolveParallel resolves every root as a model using an errgroup bounded
// by the configured concurrency. All roots share the pipeline's definitions,
// and the first error cancels the remaining roots.
func (s *Service) resolveParallel(ctx context.Context, pipeline *consolidate.Pipeline, roots []root) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)

	for _, r := range roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := pipeline.ResolveModel(r.expr); err != nil {
				return fmt.Errorf("failed to resolve %s: %w", r.name, err)
			}
			return nil
		})
	}

	return g.Wait()
}
