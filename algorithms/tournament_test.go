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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReachable(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	// Tournament on 4 nodes: 1 beats 0, 3, 2; 2 beats 3, 0; 3 beats 0.
	h := directedHandle(t, 4, [][2]int{
		{1, 0}, {1, 3}, {1, 2}, {2, 3}, {2, 0}, {3, 0},
	})

	tests := []struct {
		s, t string
		want bool
	}{
		{s: "v1", t: "v3", want: true},
		{s: "v1", t: "v0", want: true},
		{s: "v3", t: "v2", want: false},
		{s: "v0", t: "v1", want: false},
		{s: "v2", t: "v2", want: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.s, tt.t), func(t *testing.T) {
			got, err := b.IsReachable(ctx, h, tt.s, tt.t)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsReachable_CyclicTournament(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	// 3-cycle v0 -> v1 -> v2 -> v0: everything reaches everything.
	h := directedHandle(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	for _, s := range []string{"v0", "v1", "v2"} {
		for _, target := range []string{"v0", "v1", "v2"} {
			got, err := b.IsReachable(ctx, h, s, target)
			require.NoError(t, err)
			assert.True(t, got, "%s -> %s", s, target)
		}
	}
}

func TestIsReachable_SinkNode(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	// 3-cycle plus a sink that loses to everyone: the sink reaches no
	// one, everyone reaches the sink.
	h := directedHandle(t, 4, [][2]int{
		{0, 1}, {1, 2}, {2, 0},
		{0, 3}, {1, 3}, {2, 3},
	})

	for _, s := range []string{"v0", "v1", "v2"} {
		got, err := b.IsReachable(ctx, h, s, "v3")
		require.NoError(t, err)
		assert.True(t, got, "%s -> v3", s)

		got, err = b.IsReachable(ctx, h, "v3", s)
		require.NoError(t, err)
		assert.False(t, got, "v3 -> %s", s)
	}
}

func TestIsReachable_NodeNotFound(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)
	h := directedHandle(t, 2, [][2]int{{0, 1}})

	_, err := b.IsReachable(ctx, h, "missing", "v1")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = b.IsReachable(ctx, h, "v0", "missing")
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestIsStronglyConnected(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 2)

	t.Run("transitive tournament is not", func(t *testing.T) {
		h := directedHandle(t, 4, [][2]int{
			{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
		})
		got, err := b.IsStronglyConnected(ctx, h)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("reversing one edge closes the cycle", func(t *testing.T) {
		h := directedHandle(t, 4, [][2]int{
			{0, 1}, {0, 2}, {3, 0}, {1, 2}, {1, 3}, {2, 3},
		})
		got, err := b.IsStronglyConnected(ctx, h)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("three cycle", func(t *testing.T) {
		h := directedHandle(t, 3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
		got, err := b.IsStronglyConnected(ctx, h)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("single node", func(t *testing.T) {
		h := directedHandle(t, 1, nil)
		got, err := b.IsStronglyConnected(ctx, h)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

// Sequential and chunked closure checks must agree for every pair.
func TestIsReachable_MatchesSequential(t *testing.T) {
	ctx := context.Background()
	b := testBackend(t, 4)

	// 5-node tournament: i beats j when (j - i) mod 5 is 1 or 2. Strongly
	// connected by construction.
	var edges [][2]int
	for i := 0; i < 5; i++ {
		for _, d := range []int{1, 2} {
			edges = append(edges, [2]int{i, (i + d) % 5})
		}
	}
	h := directedHandle(t, 5, edges)

	for _, s := range h.Nodes() {
		for _, target := range h.Nodes() {
			got, err := b.IsReachable(ctx, h, s, target)
			require.NoError(t, err)
			assert.Equal(t, isReachableSeq(h, s, target), got, "%s -> %s", s, target)
			assert.True(t, got, "%s -> %s", s, target)
		}
	}

	connected, err := b.IsStronglyConnected(ctx, h)
	require.NoError(t, err)
	assert.True(t, connected)
}
