// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "fmt"

// Reducer combines an ordered sequence of partial results into the final
// answer, matching the sequential algorithm's semantics exactly.
//
// Implementations form a closed set of variants, one per algorithm
// family, so the combination policy is statically known rather than
// inferred per call:
//
//   - SumReducer: accumulate-sum (per-unit contributions to a global
//     accumulator)
//   - AllReducer: boolean short-circuit (reachability-style predicates)
//   - MergeReducer: disjoint merge (per-source mappings with keys
//     partitioned by construction)
//
// A reducer must be associative and order-insensitive in its numeric/set
// contribution, or use the fixed submission order as its deterministic
// tie-break; it must not need to know which chunk produced which partial.
type Reducer interface {
	// Reduce folds the ordered partials into the final result. Partials
	// of the wrong shape yield ErrReducerMismatch.
	Reduce(partials []Partial) (any, error)
}

// SumReducer combines map[string]float64 partials by element-wise
// summation. Keys may overlap across partials; missing keys contribute
// zero. The accumulate-sum variant used by centrality-style algorithms.
//
// Reducing no partials yields an empty map.
type SumReducer struct{}

// Reduce implements Reducer.
func (SumReducer) Reduce(partials []Partial) (any, error) {
	out := make(map[string]float64)
	for _, p := range partials {
		m, ok := p.(map[string]float64)
		if !ok {
			return nil, fmt.Errorf("%w: want map[string]float64, got %T", ErrReducerMismatch, p)
		}
		for k, v := range m {
			out[k] += v
		}
	}
	return out, nil
}

// AllReducer combines bool partials by conjunction, short-circuiting to
// false on the first false partial. Submission order is the deterministic
// short-circuit order, matching what the sequential reference produces
// when iterating units in the same stable order.
//
// Reducing no partials yields true (vacuous conjunction).
type AllReducer struct{}

// Reduce implements Reducer.
func (AllReducer) Reduce(partials []Partial) (any, error) {
	for _, p := range partials {
		b, ok := p.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: want bool, got %T", ErrReducerMismatch, p)
		}
		if !b {
			return false, nil
		}
	}
	return true, nil
}

// MergeReducer combines map[string]V partials by union. Chunks partition
// the key space by construction, so keys must be pairwise disjoint; a
// collision means two chunks produced a result for the same unit and is
// reported as ErrReducerMismatch rather than silently resolved.
//
// Reducing no partials yields an empty map.
type MergeReducer[V any] struct{}

// Reduce implements Reducer.
func (MergeReducer[V]) Reduce(partials []Partial) (any, error) {
	out := make(map[string]V)
	for _, p := range partials {
		m, ok := p.(map[string]V)
		if !ok {
			return nil, fmt.Errorf("%w: want map[string]%T value, got %T", ErrReducerMismatch, *new(V), p)
		}
		for k, v := range m {
			if _, dup := out[k]; dup {
				return nil, fmt.Errorf("%w: key %q produced by more than one chunk", ErrReducerMismatch, k)
			}
			out[k] = v
		}
	}
	return out, nil
}
