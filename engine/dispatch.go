// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/graphpar/graphpar/graph"
)

// SizeFunc counts the units the algorithm partitions for this call: the
// length of the stable unit enumeration chunks index into.
type SizeFunc func(h *graph.Handle, args any) (int, error)

// LocalFunc is the per-chunk computation for one algorithm. It must be
// side-effect-free on the graph and must produce a result depending only
// on the chunk's assigned units and read-only graph structure, never on
// execution order or other chunks' state. That contract is what makes
// concurrent execution safe.
type LocalFunc func(ctx context.Context, h *graph.Handle, c Chunk, args any) (Partial, error)

// EmptyFunc returns the algorithm's defined empty-input result. Invoked
// when the unit count is zero, without touching the pool.
type EmptyFunc func(h *graph.Handle, args any) (any, error)

// CacheKeyFunc derives a cache key from the call arguments. Returning
// ok=false marks the call uncacheable. The graph's content version is
// mixed into the final key by the dispatcher, so the key only needs to
// cover the arguments.
type CacheKeyFunc func(h *graph.Handle, args any) (string, bool)

// Entry describes one registered algorithm: its chunking strategy, local
// computation, and reduction rule.
type Entry struct {
	// Name is the algorithm name the host routes by. Required.
	Name string

	// Size counts the units to partition. Required.
	Size SizeFunc

	// Local computes one chunk. Required.
	Local LocalFunc

	// Reducer folds the ordered partials. Required.
	Reducer Reducer

	// Empty is the defined empty-input result. Required.
	Empty EmptyFunc

	// ChunkSize, when > 0, overrides balanced planning with fixed-size
	// chunks for this algorithm.
	ChunkSize int

	// CacheKey enables final-result caching for this algorithm. Optional;
	// nil disables caching for the entry.
	CacheKey CacheKeyFunc
}

func (e *Entry) validate() error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: nil entry", ErrInvalidEntry)
	case e.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	case e.Size == nil:
		return fmt.Errorf("%w: %q has no size function", ErrInvalidEntry, e.Name)
	case e.Local == nil:
		return fmt.Errorf("%w: %q has no local algorithm", ErrInvalidEntry, e.Name)
	case e.Reducer == nil:
		return fmt.Errorf("%w: %q has no reducer", ErrInvalidEntry, e.Name)
	case e.Empty == nil:
		return fmt.Errorf("%w: %q has no empty-input result", ErrInvalidEntry, e.Name)
	case e.ChunkSize < 0:
		return fmt.Errorf("%w: %q has negative chunk size", ErrInvalidEntry, e.Name)
	}
	return nil
}

// Dispatcher is the registration-and-routing table connecting algorithm
// names to their chunking/reduction pipeline.
//
// Description:
//
//	Register builds the static mapping at process startup; Dispatch looks
//	an entry up and executes the four-stage pipeline (plan, run, reduce,
//	return). Dispatch is stateless between calls except for the
//	registration table, which is write-once at startup and read-only
//	thereafter, and the optional final-result cache.
//
// Thread Safety: safe for concurrent use.
type Dispatcher struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	pool      *Pool
	chunkSize int

	cache  *lruCache[string, any]
	flight singleflight.Group
}

// NewDispatcher creates a dispatcher with an empty registration table.
//
// Example:
//
//	d := engine.NewDispatcher(engine.WithWorkers(4))
//	if err := d.Register(entry); err != nil {
//	    return err
//	}
//	out, err := d.Dispatch(ctx, "degree_centrality", h, nil)
func NewDispatcher(opts ...Option) *Dispatcher {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.Validate()

	d := &Dispatcher{
		entries:   make(map[string]*Entry),
		pool:      NewPool(o.Workers),
		chunkSize: o.ChunkSize,
	}
	if o.CacheSize > 0 {
		d.cache = newLRUCache[string, any](o.CacheSize)
	}
	return d
}

// Register adds an algorithm entry to the table.
//
// Outputs:
//   - error: ErrInvalidEntry for malformed entries, ErrAlreadyRegistered
//     for duplicate names.
//
// Thread Safety: safe for concurrent use, though registration is expected
// to happen once at startup.
func (d *Dispatcher) Register(e *Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[e.Name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, e.Name)
	}

	entry := *e
	d.entries[e.Name] = &entry
	slog.Debug("registered parallel algorithm", slog.String("algorithm", e.Name))
	return nil
}

// Names returns the registered algorithm names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Workers returns the worker bound of the underlying pool.
func (d *Dispatcher) Workers() int {
	return d.pool.Workers()
}

// CacheStats returns final-result cache counters. Zero values when
// caching is disabled.
func (d *Dispatcher) CacheStats() CacheStats {
	if d.cache == nil {
		return CacheStats{}
	}
	return d.cache.Stats()
}

// Dispatch routes a call to the named algorithm's parallel pipeline.
//
// Description:
//
//	Looks up the entry, partitions the algorithm's unit set into chunks,
//	fans the local algorithm out over the pool, reduces the ordered
//	partials, and returns the final result. A zero-size unit set
//	short-circuits to the entry's empty-input result without invoking the
//	pool.
//
// Inputs:
//   - ctx: context for cancellation. Must not be nil.
//   - name: registered algorithm name.
//   - h: the parallel-eligible graph. Must not be nil. Read-only for the
//     duration of the call.
//   - args: algorithm-specific arguments, passed through to the entry's
//     functions.
//
// Outputs:
//   - any: the algorithm's final result. Cached finals are shared
//     between callers; treat returned values as read-only.
//   - error: ErrNotRegistered when no entry exists (the host falls back
//     to its sequential implementation), ErrNilHandle, *TaskError for a
//     failed chunk task, ErrReducerMismatch for a contract violation.
//
// All failures surface to the caller; the engine performs no retries.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, h *graph.Handle, args any) (out any, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "Dispatcher.Dispatch",
		trace.WithAttributes(attribute.String("algorithm", name)),
	)
	defer span.End()

	cacheHit := false
	defer func() {
		label := resultLabel(err)
		if err == nil {
			span.SetStatus(codes.Ok, "")
			if cacheHit {
				label = "cache_hit"
			}
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		dispatchTotal.WithLabelValues(name, label).Inc()
		dispatchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	d.mu.RLock()
	e := d.entries[name]
	d.mu.RUnlock()
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	if h == nil {
		return nil, ErrNilHandle
	}

	key, cacheable := d.cacheKey(e, h, args)
	if !cacheable {
		return d.execute(ctx, e, h, args)
	}

	if v, ok := d.cache.Get(key); ok {
		cacheHit = true
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return v, nil
	}

	// Deduplicate concurrent identical dispatches: one execution, shared
	// result.
	v, err, shared := d.flight.Do(key, func() (any, error) {
		if v, ok := d.cache.Get(key); ok {
			return v, nil
		}
		final, ferr := d.execute(ctx, e, h, args)
		if ferr != nil {
			return nil, ferr
		}
		d.cache.Set(key, final)
		return final, nil
	})
	if err != nil {
		return nil, err
	}
	cacheHit = shared
	return v, nil
}

// cacheKey builds the full cache key for a call, or reports the call
// uncacheable. Caching requires a configured cache, an entry-level key
// function, and a source that reports a content version.
func (d *Dispatcher) cacheKey(e *Entry, h *graph.Handle, args any) (string, bool) {
	if d.cache == nil || e.CacheKey == nil || h == nil {
		return "", false
	}
	version := h.Version()
	if version == "" {
		return "", false
	}
	argsKey, ok := e.CacheKey(h, args)
	if !ok {
		return "", false
	}
	return e.Name + "\x00" + version + "\x00" + argsKey, true
}

// execute runs the plan, run, reduce stages for one call.
func (d *Dispatcher) execute(ctx context.Context, e *Entry, h *graph.Handle, args any) (any, error) {
	start := time.Now()

	n, err := e.Size(h, args)
	if err != nil {
		return nil, fmt.Errorf("%s: sizing unit set: %w", e.Name, err)
	}
	if n == 0 {
		return e.Empty(h, args)
	}

	chunkSize := e.ChunkSize
	if chunkSize == 0 {
		chunkSize = d.chunkSize
	}

	var chunks []Chunk
	if chunkSize > 0 {
		chunks, err = PlanSize(n, chunkSize)
	} else {
		chunks, err = Plan(n, d.pool.Workers())
	}
	if err != nil {
		return nil, err
	}

	dispatchUnits.Observe(float64(n))
	dispatchChunks.Observe(float64(len(chunks)))

	partials, err := d.pool.Run(ctx, chunks, func(ctx context.Context, c Chunk) (Partial, error) {
		return e.Local(ctx, h, c, args)
	})
	if err != nil {
		return nil, err
	}

	final, err := e.Reducer.Reduce(partials)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}

	slog.Debug("parallel dispatch complete",
		slog.String("algorithm", e.Name),
		slog.Int("units", n),
		slog.Int("chunks", len(chunks)),
		slog.Int("workers", d.pool.Workers()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return final, nil
}
