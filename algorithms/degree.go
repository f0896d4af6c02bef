// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package algorithms

import (
	"context"
	"fmt"

	"github.com/graphpar/graphpar/engine"
	"github.com/graphpar/graphpar/graph"
)

// Registered names of the degree algorithms.
const (
	// DegreeName is the registered name of degree centrality.
	DegreeName = "degree_centrality"

	// WeightedDegreeName is the registered name of weighted degree.
	WeightedDegreeName = "weighted_degree"
)

func degreeEntry() *engine.Entry {
	return &engine.Entry{
		Name: DegreeName,
		Size: func(h *graph.Handle, args any) (int, error) {
			return h.NodeCount(), nil
		},
		Local:   degreeChunk,
		Reducer: engine.MergeReducer[float64]{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			return map[string]float64{}, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			return "", true
		},
	}
}

// degreeChunk scores the chunk's slice of the node set. Each node is
// scored by exactly one chunk, so partial keys are disjoint.
func degreeChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	nodes := h.Nodes()
	n := h.NodeCount()
	out := make(map[string]float64, c.Len())
	for _, v := range nodes[c.Start:c.End] {
		if n <= 1 {
			out[v] = 1
			continue
		}
		out[v] = float64(h.Degree(v)) / float64(n-1)
	}
	return out, nil
}

// DegreeCentrality computes the fraction of other nodes each node is
// connected to. For directed graphs in-degree and out-degree both count;
// a self-loop counts twice. A single-node graph scores 1, matching the
// sequential reference.
func (b *Backend) DegreeCentrality(ctx context.Context, h *graph.Handle) (map[string]float64, error) {
	if h == nil {
		return nil, engine.ErrNilHandle
	}
	out, err := b.d.Dispatch(ctx, DegreeName, h, nil)
	if err != nil {
		return nil, err
	}
	scores, ok := out.(map[string]float64)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}
	return scores, nil
}

func weightedDegreeEntry() *engine.Entry {
	return &engine.Entry{
		Name: WeightedDegreeName,
		// Chunked over the edge set, not the node set: edge units use the
		// same balanced contiguous partition over the stable edge
		// enumeration that node units use.
		Size: func(h *graph.Handle, args any) (int, error) {
			return h.EdgeCount(), nil
		},
		Local:   weightedDegreeChunk,
		Reducer: engine.SumReducer{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			out := make(map[string]float64, h.NodeCount())
			for _, v := range h.Nodes() {
				out[v] = 0
			}
			return out, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			return "", true
		},
	}
}

// weightedDegreeChunk accumulates edge weights onto both endpoints for
// the chunk's slice of the edge list. A node's edges may span chunks, so
// partial keys overlap and are summed.
func weightedDegreeChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	edges := h.Edges()
	out := make(map[string]float64)
	for _, e := range edges[c.Start:c.End] {
		out[e.U] += e.Weight
		out[e.V] += e.Weight
	}
	return out, nil
}

// WeightedDegree computes each node's strength: the sum of the weights
// of its incident edges. A self-loop contributes twice; for directed
// graphs in-edges and out-edges both contribute. Isolated nodes score 0.
func (b *Backend) WeightedDegree(ctx context.Context, h *graph.Handle) (map[string]float64, error) {
	if h == nil {
		return nil, engine.ErrNilHandle
	}
	out, err := b.d.Dispatch(ctx, WeightedDegreeName, h, nil)
	if err != nil {
		return nil, err
	}
	sums, ok := out.(map[string]float64)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}

	// Edge chunks never see isolated nodes; fill the zeros here.
	strength := make(map[string]float64, h.NodeCount())
	for _, v := range h.Nodes() {
		strength[v] = sums[v]
	}
	return strength, nil
}
