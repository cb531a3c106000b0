package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run calls fn for every item on at most size goroutines.
//
// The first error returned by fn cancels the context handed to the remaining
// calls and is returned once every started call has finished. Items that were
// not started yet are skipped.
func Run[T any](ctx context.Context, size int, items []T, fn func(ctx context.Context, item T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(size, 1))

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, item)
		})
	}

	return g.Wait()
}
