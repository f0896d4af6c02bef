// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// Source is the capability surface the parallel engine consumes from a
// host graph object.
//
// Description:
//
//	The engine requires stable enumeration of nodes and edges (chunks are
//	index ranges into these enumerations), counts, ordered neighbor
//	lookup, and weight lookup. Nothing else of the host library's API is
//	consumed.
//
// Implementations must return the same enumeration order on every call
// for the duration of a dispatch, and must not mutate while a dispatch
// is in flight.
type Source interface {
	// Directed reports whether the graph is directed.
	Directed() bool

	// NodeCount returns the number of nodes.
	NodeCount() int

	// EdgeCount returns the number of edges.
	EdgeCount() int

	// Nodes returns all node ids in a stable order.
	Nodes() []string

	// Edges returns all edges in a stable order.
	Edges() []Edge

	// Neighbors returns the out-neighbors of id in a stable order.
	Neighbors(id string) []string

	// Degree returns the number of edge endpoints at id (self-loops
	// count twice).
	Degree(id string) int

	// Weight returns the weight of edge (u, v) and whether it exists.
	Weight(u, v string) (float64, bool)

	// HasNode reports whether id is a node of the graph.
	HasNode(id string) bool

	// HasEdge reports whether edge (u, v) exists.
	HasEdge(u, v string) bool
}

// Versioned is an optional Source capability. Sources that report a stable
// content version enable final-result caching in the dispatcher; sources
// without it are simply never cached.
type Versioned interface {
	// Version returns a string that changes whenever the graph content
	// changes. The empty string disables caching.
	Version() string
}

// Handle marks a graph as eligible for parallel dispatch.
//
// Description:
//
//	Handle is a thin read-only wrapper around a Source. It carries no
//	state of its own; it exists so a host dispatch layer can distinguish
//	parallel-eligible graphs from plain ones, and so the engine has a
//	single borrowing point for the shared graph.
//
// Ownership: the Handle borrows the Source. Workers share it without
// copying, which is safe because the Source is read-only for the call.
//
// Thread Safety: safe for concurrent use, provided the underlying Source
// honors the read-only contract.
type Handle struct {
	src Source
}

// NewHandle wraps a Source for parallel dispatch.
//
// Inputs:
//   - src: the host graph. Must not be nil. A *Graph must be frozen.
//
// Outputs:
//   - *Handle: the wrapper. Nil on error.
//   - error: ErrNilSource or ErrNotFrozen.
func NewHandle(src Source) (*Handle, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if g, ok := src.(*Graph); ok && !g.Frozen() {
		return nil, ErrNotFrozen
	}
	return &Handle{src: src}, nil
}

// GraphObject returns the wrapped Source.
func (h *Handle) GraphObject() Source { return h.src }

// Directed reports whether the wrapped graph is directed.
func (h *Handle) Directed() bool { return h.src.Directed() }

// NodeCount returns the wrapped graph's node count.
func (h *Handle) NodeCount() int { return h.src.NodeCount() }

// EdgeCount returns the wrapped graph's edge count.
func (h *Handle) EdgeCount() int { return h.src.EdgeCount() }

// Nodes returns the wrapped graph's stable node enumeration.
func (h *Handle) Nodes() []string { return h.src.Nodes() }

// Edges returns the wrapped graph's stable edge enumeration.
func (h *Handle) Edges() []Edge { return h.src.Edges() }

// Neighbors returns the out-neighbors of id in stable order.
func (h *Handle) Neighbors(id string) []string { return h.src.Neighbors(id) }

// Degree returns the number of edge endpoints at id.
func (h *Handle) Degree(id string) int { return h.src.Degree(id) }

// Weight returns the weight of edge (u, v) and whether it exists.
func (h *Handle) Weight(u, v string) (float64, bool) { return h.src.Weight(u, v) }

// HasNode reports whether id is a node of the wrapped graph.
func (h *Handle) HasNode(id string) bool { return h.src.HasNode(id) }

// HasEdge reports whether edge (u, v) exists.
func (h *Handle) HasEdge(u, v string) bool { return h.src.HasEdge(u, v) }

// Version returns the source's content version, or the empty string when
// the source does not implement Versioned.
func (h *Handle) Version() string {
	if v, ok := h.src.(Versioned); ok {
		return v.Version()
	}
	return ""
}
