// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine implements the chunking-and-reduction execution core.
//
// The engine splits a graph's node or edge set into balanced contiguous
// chunks (Plan), fans the chunks out over a bounded goroutine pool (Pool),
// and folds the ordered partial results into a final answer with an
// algorithm-specific reducer. The Dispatcher ties the stages together
// behind a name-keyed registration table consulted by the host library's
// call-routing layer.
//
// # Correctness Model
//
// A registered local algorithm must depend only on its chunk's assigned
// units and read-only graph structure, never on execution order or other
// chunks' state. Under that contract the pipeline guarantees the reduced
// result is identical to the sequential computation for any worker count:
// chunks partition the unit set exactly (no unit dropped or double
// counted), partial results are collected in submission order regardless
// of completion order, and reducers are either order-insensitive or use
// the submission order as their documented tie-break.
//
// # Failure Model
//
// The engine never retries and never swallows. A failing or panicking
// chunk task fails the whole dispatch with a *TaskError wrapping the
// cause; a missing registration surfaces ErrNotRegistered, the designed
// signal for the host layer to fall back to its sequential
// implementation.
package engine
