// Package workerpool bounds the concurrency of the per-HighwaySystem
// ingestion fan-out: each system's .wpt files are parsed independently, but
// every insertion into the shared quadtree must be serialized, so the pool
// caps how many systems are in flight rather than parallelizing within a
// system.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool runs a bounded number of tasks concurrently: one task closure per
// HighwaySystem.
type Pool struct {
	limit int
}

// New creates a Pool that runs at most limit tasks concurrently. limit <= 0
// means unbounded (errgroup.SetLimit(-1)).
func New(limit int) *Pool {
	return &Pool{limit: limit}
}

// Run executes task(items[i]) for every i, bounded by the pool's limit,
// returning the first error encountered (if any) after every task
// completes or ctx is canceled.
func Run[T any](ctx context.Context, p *Pool, items []T, task func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if p.limit > 0 {
		g.SetLimit(p.limit)
	}
	for _, item := range items {
		item := item
		g.Go(func() error {
			return task(gctx, item)
		})
	}
	return g.Wait()
}
