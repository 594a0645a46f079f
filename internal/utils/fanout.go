package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunAll runs every op concurrently and waits for all of them. One op failing
// never cancels the others; errors are returned in op order, nil for success.
func RunAll(ctx context.Context, ops ...func(context.Context) error) []error {
	errs := make([]error, len(ops))

	var g errgroup.Group
	for i, op := range ops {
		g.Go(func() error {
			errs[i] = op(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errs
}
