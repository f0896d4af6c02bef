// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package algorithms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphpar/graphpar/graph"
)

func TestAllPairsShortestPathLength_Path(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)
	h := pathHandle(t, 4)

	got, err := b.AllPairsShortestPathLength(ctx, h, nil)
	require.NoError(t, err)

	want := map[string]map[string]float64{
		"v0": {"v0": 0, "v1": 1, "v2": 2, "v3": 3},
		"v1": {"v0": 1, "v1": 0, "v2": 1, "v3": 2},
		"v2": {"v0": 2, "v1": 1, "v2": 0, "v3": 1},
		"v3": {"v0": 3, "v1": 2, "v2": 1, "v3": 0},
	}
	assert.Equal(t, want, got)
}

func TestAllPairsShortestPathLength_Weighted(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	g := graph.New()
	require.NoError(t, g.AddWeightedEdge("a", "b", 1))
	require.NoError(t, g.AddWeightedEdge("b", "c", 2))
	require.NoError(t, g.AddWeightedEdge("c", "d", 3))
	h := wrap(t, g)

	got, err := b.AllPairsShortestPathLength(ctx, h, &ShortestPathOptions{Weighted: true})
	require.NoError(t, err)

	assert.InDelta(t, 6.0, got["a"]["d"], delta)
	assert.InDelta(t, 5.0, got["b"]["d"], delta)
	assert.InDelta(t, 3.0, got["a"]["c"], delta)
	assert.InDelta(t, 0.0, got["a"]["a"], delta)
}

func TestAllPairsShortestPathLength_WeightedDetour(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	g := graph.New()
	require.NoError(t, g.AddWeightedEdge("a", "b", 1))
	require.NoError(t, g.AddWeightedEdge("b", "c", 1))
	require.NoError(t, g.AddWeightedEdge("a", "c", 5))
	h := wrap(t, g)

	weighted, err := b.AllPairsShortestPathLength(ctx, h, &ShortestPathOptions{Weighted: true})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, weighted["a"]["c"], delta, "detour beats the heavy direct edge")

	hops, err := b.AllPairsShortestPathLength(ctx, h, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hops["a"]["c"], "hop counting takes the direct edge")
}

func TestAllPairsShortestPathLength_Disconnected(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 4)

	g := graph.New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddNode("z"))
	h := wrap(t, g)

	got, err := b.AllPairsShortestPathLength(ctx, h, nil)
	require.NoError(t, err)

	require.Len(t, got, 3, "every node appears as a source")
	_, reachable := got["a"]["z"]
	assert.False(t, reachable, "unreachable targets are absent")
	assert.Equal(t, map[string]float64{"z": 0}, got["z"])
}

func TestAllPairsShortestPathLength_Directed(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)
	h := directedHandle(t, 3, [][2]int{{0, 1}, {1, 2}})

	got, err := b.AllPairsShortestPathLength(ctx, h, nil)
	require.NoError(t, err)

	assert.Equal(t, 2.0, got["v0"]["v2"])
	_, back := got["v2"]["v0"]
	assert.False(t, back, "edges are not traversable backwards")
	assert.Equal(t, map[string]float64{"v2": 0}, got["v2"])
}
