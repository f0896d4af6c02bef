// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Partial is an algorithm-defined partial result produced by one chunk
// task. Each reducer defines and checks its own partial shape.
type Partial = any

// Task computes the partial result for one chunk. Implementations must be
// side-effect-free on the shared graph and must depend only on the chunk's
// assigned units and read-only graph structure.
type Task func(ctx context.Context, c Chunk) (Partial, error)

// Pool executes independent chunk tasks concurrently on a bounded number
// of goroutines.
//
// Description:
//
//	Run fans a task out over a sequence of chunks and returns the partial
//	results in chunk-submission order regardless of completion order.
//	Results are written into an index-addressed buffer, not appended as
//	tasks complete, so downstream reducers can rely on the order for
//	deterministic tie-breaking.
//
// Thread Safety: safe for concurrent use; each Run call owns its own
// group and buffer.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker bound. Values <= 0 fall
// back to GOMAXPROCS, the available CPU parallelism.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the pool's worker bound.
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes task over every chunk and collects the partial results.
//
// Guarantees:
//   - Each chunk is processed by exactly one task invocation.
//   - At most Workers() tasks execute concurrently; excess chunks queue.
//   - The returned slice has the same length and index correspondence as
//     chunks, whatever order tasks complete in.
//   - Fail-fast: the first task failure cancels the group context,
//     in-flight tasks finish or observe the cancellation best-effort, and
//     Run returns a *TaskError wrapping the cause. No partial results are
//     exposed on failure. A panicking task is recovered and surfaced the
//     same way.
//
// The calling goroutine blocks until all tasks complete or the fail-fast
// abort triggers. Cancellation of the caller's ctx surfaces as the
// context's error.
func (p *Pool) Run(ctx context.Context, chunks []Chunk, task Task) ([]Partial, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	results := make([]Partial, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, c := range chunks {
		i, c := i, c
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)
					slog.Error("panic in chunk task",
						slog.String("chunk", c.String()),
						slog.Any("panic", r),
						slog.String("stack", string(buf[:n])),
					)
					err = &TaskError{Chunk: c, Err: fmt.Errorf("panic: %v", r)}
				}
			}()

			// A sibling failure already cancelled the group; skip the work.
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}

			out, terr := task(gctx, c)
			if terr != nil {
				return &TaskError{Chunk: c, Err: terr}
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
