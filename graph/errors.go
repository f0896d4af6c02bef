// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph provides the graph types consumed by the parallel engine.
//
// The package contains a concrete in-memory Graph with a build/freeze
// lifecycle, the Source capability interface the engine reads through, and
// the Handle wrapper that marks a graph as eligible for parallel dispatch.
//
// # Ownership Model
//
// A Handle borrows its Source; it never copies it. Workers executing chunk
// tasks share the Source without synchronization, which is only safe because
// the Source is read-only for the duration of every dispatch:
//   - A *Graph must be frozen before a Handle can wrap it
//   - Host-provided Sources must not mutate while a dispatch is in flight
//
// # Thread Safety
//
// Graph is NOT safe for concurrent use during building. It is designed for:
//   - Single-writer access during the build phase (AddNode, AddEdge calls)
//   - Read-only access after Freeze() is called
//
// After Freeze(), the graph can be safely read from multiple goroutines.
//
// # Lifecycle
//
// A typical graph lifecycle:
//  1. Create with New() or NewDirected()
//  2. Build with AddNode() and AddEdge() calls
//  3. Call Freeze() to finalize
//  4. Wrap with NewHandle() and hand to the engine
package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrFrozen is returned when attempting to modify a frozen graph.
	// Once Freeze() is called, the graph becomes read-only and no further
	// nodes or edges can be added.
	ErrFrozen = errors.New("graph is frozen and cannot be modified")

	// ErrNotFrozen is returned when wrapping a graph that is still in its
	// building phase. Parallel workers share the graph without copying, so
	// the graph must be frozen first.
	ErrNotFrozen = errors.New("graph must be frozen before parallel dispatch")

	// ErrEmptyNodeID is returned when a node or edge endpoint has an
	// empty identifier.
	ErrEmptyNodeID = errors.New("empty node id")

	// ErrNilSource is returned when a Handle is created around a nil source.
	ErrNilSource = errors.New("nil graph source")
)
