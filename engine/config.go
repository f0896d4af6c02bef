// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "runtime"

// DefaultCacheSize is the default capacity of the final-result cache.
const DefaultCacheSize = 128

// Options configures a Dispatcher.
type Options struct {
	// Workers bounds the number of chunk tasks executing concurrently.
	// Must be > 0. Default: GOMAXPROCS.
	Workers int

	// ChunkSize, when > 0, replaces balanced planning with fixed-size
	// chunks for entries that do not carry their own override. Default: 0
	// (balanced planning across Workers chunks).
	ChunkSize int

	// CacheSize is the capacity of the final-result LRU cache. 0 disables
	// caching. Default: DefaultCacheSize.
	CacheSize int
}

// Validate checks options and applies defaults for invalid values.
func (o *Options) Validate() {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize < 0 {
		o.ChunkSize = 0
	}
	if o.CacheSize < 0 {
		o.CacheSize = 0
	}
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Workers:   runtime.GOMAXPROCS(0),
		ChunkSize: 0,
		CacheSize: DefaultCacheSize,
	}
}

// Option configures a Dispatcher at construction.
type Option func(*Options)

// WithWorkers sets the worker bound. Values <= 0 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithChunkSize sets the default fixed chunk size for entries without a
// per-algorithm override. 0 restores balanced planning.
func WithChunkSize(n int) Option {
	return func(o *Options) { o.ChunkSize = n }
}

// WithCacheSize sets the final-result cache capacity. 0 disables caching.
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}
