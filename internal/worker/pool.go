package worker

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Task represents a unit of work to be processed by the pool.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a ProcessFunc over many inputs with bounded concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute processes every input and returns one Task per input, at the
// input's index, so callers can emit results in input order.
// A failing task does not stop the others; only cancellation of ctx does,
// in which case ctx's error is returned.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) ([]Task[T, R], error) {
	results := make([]Task[T, R], len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.workers, len(inputs)))

	for i := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result, err := p.process(gctx, inputs[i])
			results[i] = Task[T, R]{
				Input:  inputs[i],
				Result: result,
				Err:    err,
			}
			if err != nil {
				log.Debug().Err(err).Int("index", i).Msg("Task failed")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
