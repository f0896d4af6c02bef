// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// State represents the lifecycle state of the graph.
type State int

const (
	// StateBuilding indicates the graph is accepting AddNode/AddEdge calls.
	StateBuilding State = iota

	// StateFrozen indicates the graph is finalized and read-only.
	StateFrozen
)

// String returns the string representation of the State.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// DefaultEdgeWeight is the weight assigned by AddEdge when no explicit
// weight is given. Matches the convention that an unweighted graph behaves
// like a weighted graph with unit weights.
const DefaultEdgeWeight = 1.0

// Edge represents a single edge with its weight.
//
// For undirected graphs U and V record the orientation the edge was first
// added with; HasEdge and Weight accept either orientation.
type Edge struct {
	// U is the source endpoint (tail for directed graphs).
	U string

	// V is the target endpoint (head for directed graphs).
	V string

	// Weight is the edge weight. DefaultEdgeWeight for unweighted edges.
	Weight float64
}

// Graph is an in-memory graph with stable enumeration order.
//
// Description:
//
//	Nodes and edges are enumerated in insertion order, and the order is
//	fixed once Freeze() is called. The engine's chunk planner depends on
//	this stability: a Chunk is an index range into these enumerations, so
//	the enumeration must not change while chunks are in flight.
//
// Thread Safety: NOT safe for concurrent use while building. Safe for
// concurrent readers after Freeze().
type Graph struct {
	directed bool
	state    State
	version  string

	nodes []string
	index map[string]int

	// succ maps node -> neighbor -> weight. For undirected graphs each
	// edge appears under both endpoints.
	succ map[string]map[string]float64

	// nbrOrder preserves first-seen neighbor order per node so that
	// Neighbors() is deterministic across calls.
	nbrOrder map[string][]string

	// degree counts edge endpoints per node. A self-loop contributes 2.
	degree map[string]int

	edges     []Edge
	edgeIndex map[[2]string]int
}

// New creates an empty undirected graph in the building state.
func New() *Graph {
	return newGraph(false)
}

// NewDirected creates an empty directed graph in the building state.
func NewDirected() *Graph {
	return newGraph(true)
}

func newGraph(directed bool) *Graph {
	return &Graph{
		directed:  directed,
		index:     make(map[string]int),
		succ:      make(map[string]map[string]float64),
		nbrOrder:  make(map[string][]string),
		degree:    make(map[string]int),
		edgeIndex: make(map[[2]string]int),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op,
// matching the usual host-library semantics.
//
// Outputs:
//   - error: ErrFrozen after Freeze(), ErrEmptyNodeID for an empty id.
func (g *Graph) AddNode(id string) error {
	if g.state == StateFrozen {
		return ErrFrozen
	}
	if id == "" {
		return ErrEmptyNodeID
	}
	g.addNode(id)
	return nil
}

func (g *Graph) addNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.succ[id] = make(map[string]float64)
}

// AddEdge adds an edge with DefaultEdgeWeight. Missing endpoints are added
// automatically. Re-adding an existing edge updates its weight in place;
// the edge's enumeration position does not change.
func (g *Graph) AddEdge(u, v string) error {
	return g.AddWeightedEdge(u, v, DefaultEdgeWeight)
}

// AddWeightedEdge adds an edge with an explicit weight.
//
// Self-loops are allowed. For undirected graphs the edge is visible from
// both endpoints.
//
// Outputs:
//   - error: ErrFrozen after Freeze(), ErrEmptyNodeID for empty endpoints.
func (g *Graph) AddWeightedEdge(u, v string, weight float64) error {
	if g.state == StateFrozen {
		return ErrFrozen
	}
	if u == "" || v == "" {
		return ErrEmptyNodeID
	}
	g.addNode(u)
	g.addNode(v)

	key := g.edgeKey(u, v)
	if i, ok := g.edgeIndex[key]; ok {
		g.edges[i].Weight = weight
		g.succ[u][v] = weight
		if !g.directed {
			g.succ[v][u] = weight
		}
		return nil
	}

	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{U: u, V: v, Weight: weight})

	g.succ[u][v] = weight
	g.nbrOrder[u] = append(g.nbrOrder[u], v)
	if !g.directed && u != v {
		g.succ[v][u] = weight
		g.nbrOrder[v] = append(g.nbrOrder[v], u)
	}

	g.degree[u]++
	g.degree[v]++
	return nil
}

// edgeKey canonicalizes the endpoint pair for undirected graphs so that
// (u, v) and (v, u) address the same edge.
func (g *Graph) edgeKey(u, v string) [2]string {
	if !g.directed && v < u {
		u, v = v, u
	}
	return [2]string{u, v}
}

// Freeze finalizes the graph, making it read-only and safe for concurrent
// readers. Freeze is idempotent; the version is assigned on the first call
// and identifies this exact graph content for result caching.
func (g *Graph) Freeze() {
	if g.state == StateFrozen {
		return
	}
	g.state = StateFrozen
	g.version = uuid.NewString()
}

// Frozen reports whether Freeze has been called.
func (g *Graph) Frozen() bool {
	return g.state == StateFrozen
}

// Version returns the unique version stamp assigned at Freeze, or the
// empty string while the graph is still building.
func (g *Graph) Version() string {
	return g.version
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool {
	return g.directed
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all node ids in insertion order.
//
// The returned slice is the graph's internal storage and MUST NOT be
// mutated by the caller.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Edges returns all edges in insertion order.
//
// The returned slice is the graph's internal storage and MUST NOT be
// mutated by the caller.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Neighbors returns the out-neighbors of id in first-seen order. For
// undirected graphs this is all adjacent nodes. Returns nil for unknown
// ids.
//
// The returned slice is the graph's internal storage and MUST NOT be
// mutated by the caller.
func (g *Graph) Neighbors(id string) []string {
	return g.nbrOrder[id]
}

// Degree returns the number of edge endpoints at id. A self-loop counts
// twice; for directed graphs this is in-degree plus out-degree.
func (g *Graph) Degree(id string) int {
	return g.degree[id]
}

// Weight returns the weight of edge (u, v) and whether the edge exists.
// For undirected graphs the orientation does not matter.
func (g *Graph) Weight(u, v string) (float64, bool) {
	nbrs, ok := g.succ[u]
	if !ok {
		return 0, false
	}
	w, ok := nbrs[v]
	return w, ok
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether edge (u, v) exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.Weight(u, v)
	return ok
}

// String returns a short human-readable summary, useful in logs.
func (g *Graph) String() string {
	kind := "undirected"
	if g.directed {
		kind = "directed"
	}
	return fmt.Sprintf("%s graph (%s): %d nodes, %d edges", kind, g.state, len(g.nodes), len(g.edges))
}
