// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine operations.
var (
	// ErrInvalidPartition is returned when the chunk planner is invoked
	// with a negative unit count or a non-positive worker count. This is
	// a caller programming error and is never retried.
	ErrInvalidPartition = errors.New("invalid partition request")

	// ErrNotRegistered is returned by Dispatch when no entry exists for
	// the requested algorithm name. This is the designed fallback signal:
	// the host dispatch layer is expected to route the call to its
	// sequential implementation instead.
	ErrNotRegistered = errors.New("no parallel implementation registered")

	// ErrReducerMismatch is returned when a reducer receives a partial
	// result shape it cannot combine. It indicates a local-algorithm /
	// reducer contract violation and is never silently dropped.
	ErrReducerMismatch = errors.New("partial result does not match reducer contract")

	// ErrAlreadyRegistered is returned when registering an algorithm name
	// that already has an entry. The registration table is write-once.
	ErrAlreadyRegistered = errors.New("algorithm already registered")

	// ErrInvalidEntry is returned when registering an entry with missing
	// required fields.
	ErrInvalidEntry = errors.New("invalid algorithm entry")

	// ErrNilHandle is returned by Dispatch when called without a graph
	// handle.
	ErrNilHandle = errors.New("nil graph handle")
)

// TaskError wraps the failure of a single chunk task.
//
// The pool fails fast: the first task failure aborts the dispatch and no
// partial results reach the reducer, since combining results from
// some-but-not-all chunks is undefined for algorithm correctness.
type TaskError struct {
	// Chunk is the chunk whose task failed.
	Chunk Chunk

	// Err is the original cause.
	Err error
}

// Error returns the task failure description.
func (e *TaskError) Error() string {
	return fmt.Sprintf("chunk [%d,%d) task failed: %v", e.Chunk.Start, e.Chunk.End, e.Err)
}

// Unwrap returns the original cause.
func (e *TaskError) Unwrap() error {
	return e.Err
}
