package runner

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Step is one unit of a pipeline: a task or a composition of tasks.
type Step func(ctx context.Context) error

// Series runs steps one after another and stops at the first failure.
func Series(steps ...Step) Step {
	return func(ctx context.Context) error {
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := step(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

// Parallel runs steps concurrently. Every step runs to completion even when
// another fails; the group fails with the joined errors of the failed steps.
func Parallel(steps ...Step) Step {
	return func(ctx context.Context) error {
		var g errgroup.Group
		errs := make([]error, len(steps))

		for i, step := range steps {
			g.Go(func() error {
				errs[i] = step(ctx)
				return nil
			})
		}
		_ = g.Wait()

		return errors.Join(errs...)
	}
}
