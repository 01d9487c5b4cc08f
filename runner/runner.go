package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work bound to a context.
type Task func(ctx context.Context) error

// RunAll runs all the provided tasks concurrently and waits for all of them to finish.
//
// The first failing task cancels the context given to the others, and its error is returned.
// A limit lower or equal to zero means no limit on the number of concurrent tasks.
func RunAll(parentCtx context.Context, limit int, tasks ...Task) error {
	group, ctx := errgroup.WithContext(parentCtx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	for _, task := range tasks {
		task := task
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return task(ctx)
		})
	}

	return group.Wait()
}
