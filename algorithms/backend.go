// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package algorithms provides the registered parallel graph algorithms.
//
// Each algorithm is a small LocalAlgorithm/Reducer pair built on the
// engine's chunking pipeline: the local function computes one chunk of
// the unit set against the read-only graph handle, and one of the
// engine's closed reducer variants folds the ordered partials into the
// final answer. The Backend bundles a dispatcher with every built-in
// registered and exposes typed wrappers for hosts that prefer a typed
// surface over name routing.
package algorithms

import (
	"errors"
	"fmt"

	"github.com/graphpar/graphpar/engine"
)

// Sentinel errors for algorithm calls.
var (
	// ErrInvalidArgs is returned when a dispatch carries arguments of the
	// wrong shape for the named algorithm.
	ErrInvalidArgs = errors.New("invalid algorithm arguments")

	// ErrNodeNotFound is returned when a named node is not in the graph.
	ErrNodeNotFound = errors.New("node not found")
)

// Backend bundles a dispatcher with all built-in algorithms registered.
//
// Description:
//
//	Backend is the host-facing surface: a host dispatch layer either
//	routes by name through Dispatcher(), or calls the typed wrappers
//	directly. Registration happens once at construction; the table is
//	read-only afterwards.
//
// Thread Safety: safe for concurrent use.
type Backend struct {
	d *engine.Dispatcher
}

// New creates a backend with every built-in algorithm registered.
//
// Example:
//
//	b, err := algorithms.New(engine.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	scores, err := b.BetweennessCentrality(ctx, h, nil)
func New(opts ...engine.Option) (*Backend, error) {
	d := engine.NewDispatcher(opts...)
	if err := RegisterAll(d); err != nil {
		return nil, err
	}
	return &Backend{d: d}, nil
}

// RegisterAll registers every built-in algorithm on the dispatcher.
// Intended for hosts that construct their own dispatcher.
func RegisterAll(d *engine.Dispatcher) error {
	for _, e := range []*engine.Entry{
		betweennessEntry(),
		reachableEntry(),
		stronglyConnectedEntry(),
		shortestPathEntry(),
		degreeEntry(),
		weightedDegreeEntry(),
	} {
		if err := d.Register(e); err != nil {
			return fmt.Errorf("registering %s: %w", e.Name, err)
		}
	}
	return nil
}

// Dispatcher returns the underlying dispatcher for name-keyed routing.
func (b *Backend) Dispatcher() *engine.Dispatcher {
	return b.d
}
