// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unversionedSource wraps a Graph but hides its Version method.
type unversionedSource struct {
	g *Graph
}

func (s unversionedSource) Directed() bool               { return s.g.Directed() }
func (s unversionedSource) NodeCount() int               { return s.g.NodeCount() }
func (s unversionedSource) EdgeCount() int               { return s.g.EdgeCount() }
func (s unversionedSource) Nodes() []string              { return s.g.Nodes() }
func (s unversionedSource) Edges() []Edge                { return s.g.Edges() }
func (s unversionedSource) Neighbors(id string) []string { return s.g.Neighbors(id) }
func (s unversionedSource) Degree(id string) int         { return s.g.Degree(id) }
func (s unversionedSource) HasNode(id string) bool       { return s.g.HasNode(id) }
func (s unversionedSource) HasEdge(u, v string) bool     { return s.g.HasEdge(u, v) }

func (s unversionedSource) Weight(u, v string) (float64, bool) {
	return s.g.Weight(u, v)
}

func TestNewHandle_Validation(t *testing.T) {
	_, err := NewHandle(nil)
	assert.ErrorIs(t, err, ErrNilSource)

	g := New()
	require.NoError(t, g.AddEdge("a", "b"))

	_, err = NewHandle(g)
	assert.ErrorIs(t, err, ErrNotFrozen, "unfrozen graph must be rejected")

	g.Freeze()
	h, err := NewHandle(g)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Same(t, Source(g), h.GraphObject())
}

func TestHandle_Delegation(t *testing.T) {
	g := NewDirected()
	require.NoError(t, g.AddWeightedEdge("a", "b", 2))
	require.NoError(t, g.AddEdge("b", "c"))
	g.Freeze()

	h, err := NewHandle(g)
	require.NoError(t, err)

	assert.True(t, h.Directed())
	assert.Equal(t, 3, h.NodeCount())
	assert.Equal(t, 2, h.EdgeCount())
	assert.Equal(t, []string{"a", "b", "c"}, h.Nodes())
	assert.Len(t, h.Edges(), 2)
	assert.Equal(t, []string{"b"}, h.Neighbors("a"))
	assert.Equal(t, 1, h.Degree("a"))
	assert.True(t, h.HasNode("c"))
	assert.False(t, h.HasNode("z"))
	assert.True(t, h.HasEdge("a", "b"))
	assert.False(t, h.HasEdge("b", "a"))

	w, ok := h.Weight("a", "b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)

	assert.Equal(t, g.Version(), h.Version())
}

func TestHandle_VersionWithoutVersioned(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("a", "b"))
	g.Freeze()

	h, err := NewHandle(unversionedSource{g: g})
	require.NoError(t, err)
	assert.Equal(t, "", h.Version(), "sources without Versioned report no version")
}
