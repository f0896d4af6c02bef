// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "fmt"

// Chunk is a half-open index range [Start, End) into the stable unit
// enumeration being partitioned (nodes or edges).
type Chunk struct {
	// Start is the inclusive start index.
	Start int

	// End is the exclusive end index.
	End int
}

// Len returns the number of units in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// String returns the interval notation for the chunk.
func (c Chunk) String() string {
	return fmt.Sprintf("[%d,%d)", c.Start, c.End)
}

// Plan partitions totalUnits units across at most workerCount balanced
// contiguous chunks.
//
// Description:
//
//	Units are divided as evenly as possible: when totalUnits is not
//	divisible by workerCount, the first totalUnits mod workerCount chunks
//	receive one extra unit, so no two chunks differ in size by more than
//	one. When totalUnits < workerCount the plan holds exactly totalUnits
//	chunks of size 1; empty chunks are never produced, since an empty
//	chunk wastes a worker dispatch for zero work. When totalUnits is 0
//	the plan is empty and callers must return the algorithm's defined
//	empty-input result without invoking the pool.
//
//	Plan is a pure function of its two inputs; it never consults global
//	state.
//
// Inputs:
//   - totalUnits: number of units to partition. Must be >= 0.
//   - workerCount: worker budget. Must be >= 1.
//
// Outputs:
//   - []Chunk: disjoint chunks sorted by Start whose union is
//     [0, totalUnits). Nil when totalUnits is 0.
//   - error: ErrInvalidPartition for out-of-range inputs.
func Plan(totalUnits, workerCount int) ([]Chunk, error) {
	if totalUnits < 0 {
		return nil, fmt.Errorf("%w: negative unit count %d", ErrInvalidPartition, totalUnits)
	}
	if workerCount < 1 {
		return nil, fmt.Errorf("%w: worker count %d", ErrInvalidPartition, workerCount)
	}
	if totalUnits == 0 {
		return nil, nil
	}

	n := workerCount
	if totalUnits < n {
		n = totalUnits
	}

	base := totalUnits / n
	extra := totalUnits % n

	chunks := make([]Chunk, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		chunks = append(chunks, Chunk{Start: start, End: start + size})
		start += size
	}
	return chunks, nil
}

// PlanSize partitions totalUnits units into contiguous chunks of a fixed
// size; the last chunk may be short. Backs the per-algorithm chunk-size
// override. Same invariants as Plan: disjoint, sorted, covering.
//
// Outputs:
//   - []Chunk: the plan. Nil when totalUnits is 0.
//   - error: ErrInvalidPartition when totalUnits < 0 or chunkSize < 1.
func PlanSize(totalUnits, chunkSize int) ([]Chunk, error) {
	if totalUnits < 0 {
		return nil, fmt.Errorf("%w: negative unit count %d", ErrInvalidPartition, totalUnits)
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidPartition, chunkSize)
	}
	if totalUnits == 0 {
		return nil, nil
	}

	chunks := make([]Chunk, 0, (totalUnits+chunkSize-1)/chunkSize)
	for start := 0; start < totalUnits; start += chunkSize {
		end := start + chunkSize
		if end > totalUnits {
			end = totalUnits
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks, nil
}
