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

// Registered names of the tournament algorithms.
const (
	// ReachableName is the registered name of tournament reachability.
	ReachableName = "tournament.is_reachable"

	// StronglyConnectedName is the registered name of tournament strong
	// connectivity.
	StronglyConnectedName = "tournament.is_strongly_connected"
)

// reachableArgs is the dispatch payload for tournament.is_reachable.
type reachableArgs struct {
	s, t string
}

// Tournament reachability uses the closure criterion: s does not reach t
// exactly when some two-neighborhood S separates them, meaning s is in S,
// t is not, and every node outside S beats every node inside S. Chunks
// scan disjoint slices of the candidate neighborhoods; a chunk that finds
// a separating set reports false and the conjunction short-circuits.

func reachableEntry() *engine.Entry {
	return &engine.Entry{
		Name: ReachableName,
		Size: func(h *graph.Handle, args any) (int, error) {
			if _, err := reachableArgsOf(args); err != nil {
				return 0, err
			}
			return h.NodeCount(), nil
		},
		Local:   reachableChunk,
		Reducer: engine.AllReducer{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			// No candidate separating sets exist.
			return true, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			a, err := reachableArgsOf(args)
			if err != nil {
				return "", false
			}
			return fmt.Sprintf("s=%s;t=%s", a.s, a.t), true
		},
	}
}

func reachableArgsOf(args any) (reachableArgs, error) {
	a, ok := args.(reachableArgs)
	if !ok {
		return reachableArgs{}, fmt.Errorf("%w: want reachableArgs, got %T", ErrInvalidArgs, args)
	}
	return a, nil
}

func reachableChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	a, err := reachableArgsOf(args)
	if err != nil {
		return nil, err
	}

	nodes := h.Nodes()
	for _, v := range nodes[c.Start:c.End] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set := twoNeighborhood(h, v)
		if set[a.s] && !set[a.t] && isClosed(h, set) {
			return false, nil
		}
	}
	return true, nil
}

// IsReachable decides whether there is a path from s to t in the
// tournament wrapped by h.
//
// Inputs:
//   - ctx: context for cancellation. Must not be nil.
//   - h: the tournament handle. Must not be nil. The graph is assumed to
//     be a tournament (a complete orientation); this is not validated.
//   - s, t: nodes of the graph.
//
// Outputs:
//   - bool: whether t is reachable from s. IsReachable(s, s) is true.
//   - error: ErrNodeNotFound when s or t is not in the graph.
func (b *Backend) IsReachable(ctx context.Context, h *graph.Handle, s, t string) (bool, error) {
	if h == nil {
		return false, engine.ErrNilHandle
	}
	if !h.HasNode(s) {
		return false, fmt.Errorf("%w: %q", ErrNodeNotFound, s)
	}
	if !h.HasNode(t) {
		return false, fmt.Errorf("%w: %q", ErrNodeNotFound, t)
	}

	out, err := b.d.Dispatch(ctx, ReachableName, h, reachableArgs{s: s, t: t})
	if err != nil {
		return false, err
	}
	reachable, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}
	return reachable, nil
}

func stronglyConnectedEntry() *engine.Entry {
	return &engine.Entry{
		Name: StronglyConnectedName,
		Size: func(h *graph.Handle, args any) (int, error) {
			return h.NodeCount(), nil
		},
		Local:   stronglyConnectedChunk,
		Reducer: engine.AllReducer{},
		Empty: func(h *graph.Handle, args any) (any, error) {
			// Vacuously strongly connected.
			return true, nil
		},
		CacheKey: func(h *graph.Handle, args any) (string, bool) {
			return "", true
		},
	}
}

// stronglyConnectedChunk verifies that every node in the chunk's slice is
// reachable from every node of the tournament, using the sequential
// closure check per pair.
func stronglyConnectedChunk(ctx context.Context, h *graph.Handle, c engine.Chunk, args any) (engine.Partial, error) {
	nodes := h.Nodes()
	for _, v := range nodes[c.Start:c.End] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, u := range nodes {
			if !isReachableSeq(h, u, v) {
				return false, nil
			}
		}
	}
	return true, nil
}

// IsStronglyConnected decides whether the tournament wrapped by h is
// strongly connected. An empty tournament is vacuously strongly
// connected.
func (b *Backend) IsStronglyConnected(ctx context.Context, h *graph.Handle) (bool, error) {
	if h == nil {
		return false, engine.ErrNilHandle
	}
	out, err := b.d.Dispatch(ctx, StronglyConnectedName, h, nil)
	if err != nil {
		return false, err
	}
	connected, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: unexpected final result %T", engine.ErrReducerMismatch, out)
	}
	return connected, nil
}

// isReachableSeq is the sequential closure check for one (s, t) pair.
func isReachableSeq(h *graph.Handle, s, t string) bool {
	if s == t {
		return true
	}
	for _, v := range h.Nodes() {
		set := twoNeighborhood(h, v)
		if set[s] && !set[t] && isClosed(h, set) {
			return false
		}
	}
	return true
}

// twoNeighborhood returns the set of nodes reachable from v in at most
// two hops along out-edges, including v itself.
func twoNeighborhood(h *graph.Handle, v string) map[string]bool {
	out := map[string]bool{v: true}
	for _, u := range h.Neighbors(v) {
		out[u] = true
		for _, w := range h.Neighbors(u) {
			out[w] = true
		}
	}
	return out
}

// isClosed reports whether every node outside the set has an edge to
// every node inside it.
func isClosed(h *graph.Handle, set map[string]bool) bool {
	for _, u := range h.Nodes() {
		if set[u] {
			continue
		}
		for v := range set {
			if !h.HasEdge(u, v) {
				return false
			}
		}
	}
	return true
}
