// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestSumReducer(t *testing.T) {
	tests := []struct {
		name     string
		partials []Partial
		want     map[string]float64
	}{
		{
			name: "overlapping keys sum",
			partials: []Partial{
				map[string]float64{"a": 1, "b": 2},
				map[string]float64{"b": 3, "c": 4},
			},
			want: map[string]float64{"a": 1, "b": 5, "c": 4},
		},
		{
			name: "disjoint keys pass through",
			partials: []Partial{
				map[string]float64{"a": 1},
				map[string]float64{"b": 2},
			},
			want: map[string]float64{"a": 1, "b": 2},
		},
		{
			name:     "no partials yields empty map",
			partials: nil,
			want:     map[string]float64{},
		},
		{
			name: "empty partial contributes nothing",
			partials: []Partial{
				map[string]float64{},
				map[string]float64{"a": 0.5},
			},
			want: map[string]float64{"a": 0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SumReducer{}.Reduce(tt.partials)
			if err != nil {
				t.Fatalf("Reduce() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reduce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSumReducer_Mismatch(t *testing.T) {
	_, err := SumReducer{}.Reduce([]Partial{map[string]float64{"a": 1}, "not a map"})
	if !errors.Is(err, ErrReducerMismatch) {
		t.Errorf("Reduce() error = %v, want ErrReducerMismatch", err)
	}
}

func TestAllReducer(t *testing.T) {
	tests := []struct {
		name     string
		partials []Partial
		want     bool
	}{
		{name: "all true", partials: []Partial{true, true, true}, want: true},
		{name: "one false", partials: []Partial{true, false, true}, want: false},
		{name: "no partials is vacuously true", partials: nil, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AllReducer{}.Reduce(tt.partials)
			if err != nil {
				t.Fatalf("Reduce() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Reduce() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllReducer_ShortCircuit(t *testing.T) {
	// The mismatched partial sits after the first false and must never be
	// inspected.
	got, err := AllReducer{}.Reduce([]Partial{true, false, "never reached"})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if got != false {
		t.Errorf("Reduce() = %v, want false", got)
	}
}

func TestAllReducer_Mismatch(t *testing.T) {
	_, err := AllReducer{}.Reduce([]Partial{true, 42})
	if !errors.Is(err, ErrReducerMismatch) {
		t.Errorf("Reduce() error = %v, want ErrReducerMismatch", err)
	}
}

func TestMergeReducer(t *testing.T) {
	got, err := MergeReducer[float64]{}.Reduce([]Partial{
		map[string]float64{"a": 1, "b": 2},
		map[string]float64{"c": 3},
	})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	want := map[string]float64{"a": 1, "b": 2, "c": 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestMergeReducer_Empty(t *testing.T) {
	got, err := MergeReducer[int]{}.Reduce(nil)
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if m, ok := got.(map[string]int); !ok || len(m) != 0 {
		t.Errorf("Reduce() = %v, want empty map[string]int", got)
	}
}

func TestMergeReducer_DuplicateKey(t *testing.T) {
	_, err := MergeReducer[float64]{}.Reduce([]Partial{
		map[string]float64{"a": 1},
		map[string]float64{"a": 2},
	})
	if !errors.Is(err, ErrReducerMismatch) {
		t.Errorf("Reduce() error = %v, want ErrReducerMismatch for duplicate key", err)
	}
}

func TestMergeReducer_Mismatch(t *testing.T) {
	_, err := MergeReducer[float64]{}.Reduce([]Partial{map[string]int{"a": 1}})
	if !errors.Is(err, ErrReducerMismatch) {
		t.Errorf("Reduce() error = %v, want ErrReducerMismatch for wrong value type", err)
	}
}

func TestMergeReducer_NestedMaps(t *testing.T) {
	got, err := MergeReducer[map[string]float64]{}.Reduce([]Partial{
		map[string]map[string]float64{"a": {"b": 1}},
		map[string]map[string]float64{"b": {"a": 1}},
	})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	want := map[string]map[string]float64{"a": {"b": 1}, "b": {"a": 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}
