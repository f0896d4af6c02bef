// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package algorithms

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/graphpar/graphpar/engine"
	"github.com/graphpar/graphpar/graph"
)

// ShortestPathName is the registered name of the all-pairs shortest path
// length algorithm.
const ShortestPathName = "all_pairs_shortest_path_length"

// ShortestPathOptions configures AllPairsShortestPathLength.
type ShortestPathOptions struct {
	// Weighted uses edge weights as distances (Dijkstra) instead of hop
	// counts (BFS). Weights must be positive.
	Weighted bool
}

// shortestPathArgs is the dispatch payload.
type shortestPathArgs struct {
	weighted bool
}

// The source set is chunked; every source's full path tree is computed
// independently, so the per-source result maps have pairwise-disjoint
// keys by construction and the reduction is a plain union.

func shortestPathEntry() *engine.Entry {
	return &engine.Entry{
		Name: ShortestPathName,
		Size: func(h *graph.Handle, args any) (int, error) {
			if _, err := shortestPathArgsOf(args); err != nil {
				return 0, err
			}
			return h.NodeCount(), nil
		},
		Local:   shortestPathChunk,
		Reducer: engine.MergeReducer[map[string]float64]{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			return map[string]map[string]float64{}, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			a, err := shortestPathArgsOf(args)
			if err != nil {
				return "", false
			}
			return fmt.Sprintf("w=%t", a.weighted), true
		},
	}
}

func shortestPathArgsOf(args any) (shortestPathArgs, error) {
	a, ok := args.(shortestPathArgs)
	if !ok {
		return shortestPathArgs{}, fmt.Errorf("%w: want shortestPathArgs, got %T", ErrInvalidArgs, args)
	}
	return a, nil
}

func shortestPathChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	a, err := shortestPathArgsOf(args)
	if err != nil {
		return nil, err
	}

	nodes := h.Nodes()
	out := make(map[string]map[string]float64, c.Len())
	for _, s := range nodes[c.Start:c.End] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.weighted {
			out[s] = dijkstraLengths(h, s)
		} else {
			out[s] = bfsLengths(h, s)
		}
	}
	return out, nil
}

// AllPairsShortestPathLength computes shortest path lengths between all
// reachable node pairs, distributing the source set across the worker
// pool.
//
// Outputs:
//   - map[string]map[string]float64: source -> target -> distance. Nodes
//     unreachable from a source are absent from its inner map; the
//     source itself is present at distance 0.
//   - error: non-nil on dispatch failure.
func (b *Backend) AllPairsShortestPathLength(ctx context.Context, h *graph.Handle, opts *ShortestPathOptions) (map[string]map[string]float64, error) {
	if h == nil {
		return nil, engine.ErrNilHandle
	}
	o := ShortestPathOptions{}
	if opts != nil {
		o = *opts
	}

	out, err := b.d.Dispatch(ctx, ShortestPathName, h, shortestPathArgs{weighted: o.Weighted})
	if err != nil {
		return nil, err
	}
	lengths, ok := out.(map[string]map[string]float64)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}
	return lengths, nil
}

// bfsLengths returns hop-count distances from s to every reachable node.
func bfsLengths(h *graph.Handle, s string) map[string]float64 {
	dist := map[string]float64{s: 0}
	queue := []string{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		dv := dist[v]
		for _, w := range h.Neighbors(v) {
			if _, seen := dist[w]; !seen {
				dist[w] = dv + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// dijkstraLengths returns weighted distances from s to every reachable
// node. Edge weights must be positive.
func dijkstraLengths(h *graph.Handle, s string) map[string]float64 {
	dist := make(map[string]float64)
	seen := map[string]float64{s: 0}

	q := &distQueue{}
	seq := 0
	heap.Push(q, distItem{dist: 0, seq: seq, node: s})

	for q.Len() > 0 {
		it := heap.Pop(q).(distItem)
		v := it.node
		if _, ok := dist[v]; ok {
			continue
		}
		dist[v] = it.dist

		for _, w := range h.Neighbors(v) {
			wt, _ := h.Weight(v, w)
			vwDist := it.dist + wt
			if _, ok := dist[w]; ok {
				continue
			}
			if sw, wasSeen := seen[w]; !wasSeen || vwDist < sw {
				seen[w] = vwDist
				seq++
				heap.Push(q, distItem{dist: vwDist, seq: seq, node: w})
			}
		}
	}
	return dist
}
