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

// BetweennessName is the registered name of the betweenness centrality
// algorithm.
const BetweennessName = "betweenness_centrality"

// BetweennessOptions configures BetweennessCentrality.
type BetweennessOptions struct {
	// K, when > 0 and < the node count, estimates betweenness from the
	// first K nodes of the stable node order instead of all sources. The
	// deterministic prefix keeps results reproducible across worker
	// counts and runs.
	K int

	// Normalized rescales values by 2/((n-1)(n-2)) for undirected graphs
	// and 1/((n-1)(n-2)) for directed graphs.
	Normalized bool

	// Weighted uses edge weights as distances (Dijkstra) instead of hop
	// counts (BFS). Weights must be positive.
	Weighted bool

	// Endpoints includes path endpoints in the shortest-path counts.
	Endpoints bool
}

// DefaultBetweennessOptions returns the reference defaults.
func DefaultBetweennessOptions() *BetweennessOptions {
	return &BetweennessOptions{Normalized: true}
}

// betweennessArgs is the dispatch payload. The source set is materialized
// once by the wrapper so every chunk indexes the same stable sequence.
type betweennessArgs struct {
	sources   []string
	weighted  bool
	endpoints bool
}

func betweennessEntry() *engine.Entry {
	return &engine.Entry{
		Name: BetweennessName,
		Size: func(h *graph.Handle, args any) (int, error) {
			a, err := betweennessArgsOf(args)
			if err != nil {
				return 0, err
			}
			return len(a.sources), nil
		},
		Local:   betweennessChunk,
		Reducer: engine.SumReducer{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			return map[string]float64{}, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			a, err := betweennessArgsOf(args)
			if err != nil {
				return "", false
			}
			return fmt.Sprintf("k=%d;w=%t;e=%t", len(a.sources), a.weighted, a.endpoints), true
		},
	}
}

func betweennessArgsOf(args any) (betweennessArgs, error) {
	a, ok := args.(betweennessArgs)
	if !ok {
		return betweennessArgs{}, fmt.Errorf("%w: want betweennessArgs, got %T", ErrInvalidArgs, args)
	}
	return a, nil
}

// betweennessChunk runs Brandes accumulation for the chunk's slice of the
// source set. The partial holds every node's contribution from these
// sources; partials overlap in keys and are summed element-wise.
func betweennessChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	a, err := betweennessArgsOf(args)
	if err != nil {
		return nil, err
	}

	bt := make(map[string]float64, h.NodeCount())
	for _, v := range h.Nodes() {
		bt[v] = 0
	}

	for _, s := range a.sources[c.Start:c.End] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			order []string
			preds map[string][]string
			sigma map[string]float64
		)
		if a.weighted {
			order, preds, sigma = dijkstraPaths(h, s)
		} else {
			order, preds, sigma = shortestPaths(h, s)
		}
		if a.endpoints {
			accumulateEndpoints(bt, order, preds, sigma, s)
		} else {
			accumulateBasic(bt, order, preds, sigma, s)
		}
	}
	return bt, nil
}

// BetweennessCentrality computes shortest-path betweenness centrality for
// all nodes, distributing the source set across the worker pool.
//
// Description:
//
//	Betweenness centrality of a node v is the sum over all node pairs of
//	the fraction of pair shortest paths passing through v. Sources are
//	chunked; each chunk accumulates its sources' contributions
//	independently and the per-node accumulators are summed across
//	chunks, then rescaled exactly as the sequential reference does.
//
// Inputs:
//   - ctx: context for cancellation. Must not be nil.
//   - h: the graph handle. Must not be nil.
//   - opts: configuration. Nil means DefaultBetweennessOptions().
//
// Outputs:
//   - map[string]float64: centrality per node. Empty map for an empty
//     graph.
//   - error: non-nil on dispatch failure.
func (b *Backend) BetweennessCentrality(ctx context.Context, h *graph.Handle, opts *BetweennessOptions) (map[string]float64, error) {
	if h == nil {
		return nil, engine.ErrNilHandle
	}
	o := *DefaultBetweennessOptions()
	if opts != nil {
		o = *opts
	}

	nodes := h.Nodes()
	sources := nodes
	k := 0
	if o.K > 0 && o.K < len(nodes) {
		sources = nodes[:o.K]
		k = o.K
	}

	out, err := b.d.Dispatch(ctx, BetweennessName, h, betweennessArgs{
		sources:   sources,
		weighted:  o.Weighted,
		endpoints: o.Endpoints,
	})
	if err != nil {
		return nil, err
	}
	bt, ok := out.(map[string]float64)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}
	return rescale(bt, h.NodeCount(), o.Normalized, h.Directed(), k, o.Endpoints), nil
}

// shortestPaths runs the BFS stage of Brandes' algorithm from s.
//
// Returns nodes in non-decreasing distance order, the shortest-path
// predecessor lists, and the shortest-path counts.
func shortestPaths(h *graph.Handle, s string) ([]string, map[string][]string, map[string]float64) {
	var order []string
	preds := make(map[string][]string)
	sigma := map[string]float64{s: 1}
	dist := map[string]int{s: 0}

	queue := []string{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		dv := dist[v]
		sv := sigma[v]

		for _, w := range h.Neighbors(v) {
			dw, seen := dist[w]
			if !seen {
				dw = dv + 1
				dist[w] = dw
				queue = append(queue, w)
			}
			if dw == dv+1 {
				sigma[w] += sv
				preds[w] = append(preds[w], v)
			}
		}
	}
	return order, preds, sigma
}

// dijkstraPaths runs the weighted stage of Brandes' algorithm from s.
// Edge weights must be positive.
func dijkstraPaths(h *graph.Handle, s string) ([]string, map[string][]string, map[string]float64) {
	var order []string
	preds := make(map[string][]string)
	sigma := map[string]float64{s: 1}
	done := make(map[string]bool)
	seen := map[string]float64{s: 0}

	q := &distQueue{}
	seq := 0
	heap.Push(q, distItem{dist: 0, seq: seq, pred: s, node: s})

	for q.Len() > 0 {
		it := heap.Pop(q).(distItem)
		v := it.node
		if done[v] {
			continue
		}
		if v != s {
			sigma[v] += sigma[it.pred]
		}
		order = append(order, v)
		done[v] = true

		for _, w := range h.Neighbors(v) {
			wt, _ := h.Weight(v, w)
			vwDist := it.dist + wt
			if done[w] {
				continue
			}
			sw, wasSeen := seen[w]
			switch {
			case !wasSeen || vwDist < sw:
				seen[w] = vwDist
				seq++
				heap.Push(q, distItem{dist: vwDist, seq: seq, pred: v, node: w})
				sigma[w] = 0
				preds[w] = []string{v}
			case vwDist == sw:
				sigma[w] += sigma[v]
				preds[w] = append(preds[w], v)
			}
		}
	}
	return order, preds, sigma
}

// accumulateBasic folds one source's dependency contributions into bt.
func accumulateBasic(bt map[string]float64, order []string, preds map[string][]string, sigma map[string]float64, s string) {
	delta := make(map[string]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		coeff := (1 + delta[w]) / sigma[w]
		for _, v := range preds[w] {
			delta[v] += sigma[v] * coeff
		}
		if w != s {
			bt[w] += delta[w]
		}
	}
}

// accumulateEndpoints is accumulateBasic with path endpoints counted.
func accumulateEndpoints(bt map[string]float64, order []string, preds map[string][]string, sigma map[string]float64, s string) {
	bt[s] += float64(len(order) - 1)
	delta := make(map[string]float64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		coeff := (1 + delta[w]) / sigma[w]
		for _, v := range preds[w] {
			delta[v] += sigma[v] * coeff
		}
		if w != s {
			bt[w] += delta[w] + 1
		}
	}
}

// rescale applies the reference normalization to a fresh map. The input
// may be a cached final result, so it is never mutated.
func rescale(bt map[string]float64, n int, normalized, directed bool, k int, endpoints bool) map[string]float64 {
	scale := 0.0
	hasScale := false
	switch {
	case normalized && endpoints:
		if n >= 2 {
			scale = 1 / float64(n*(n-1))
			hasScale = true
		}
	case normalized:
		if n > 2 {
			scale = 1 / float64((n-1)*(n-2))
			hasScale = true
		}
	case !directed:
		// Undirected pairs were counted in both directions.
		scale = 0.5
		hasScale = true
	}

	out := make(map[string]float64, len(bt))
	if !hasScale {
		for node, v := range bt {
			out[node] = v
		}
		return out
	}
	if k > 0 {
		scale *= float64(n) / float64(k)
	}
	for node, v := range bt {
		out[node] = v * scale
	}
	return out
}

// distItem is a priority-queue entry for dijkstraPaths. The sequence
// number makes pops stable for equal distances.
type distItem struct {
	dist float64
	seq  int
	pred string
	node string
}

// distQueue implements heap.Interface ordered by (dist, seq).
type distQueue []distItem

func (q distQueue) Len() int { return len(q) }

func (q distQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}

func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue) Push(x any) { *q = append(*q, x.(distItem)) }

func (q *distQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
