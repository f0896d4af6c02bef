// Copyright (C) 2026 Graphpar Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// Package-level tracer for dispatch operations.
var tracer = otel.Tracer("graphpar.engine")

var (
	// dispatchTotal counts dispatches by algorithm and result.
	// Result labels: "success", "cache_hit", "not_registered",
	// "task_failure", "reducer_mismatch", "error"
	dispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "graphpar_dispatch_total",
		Help: "Total parallel dispatches by algorithm and result",
	}, []string{"algorithm", "result"})

	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphpar_dispatch_duration_seconds",
		Help:    "Parallel dispatch duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})

	dispatchChunks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "graphpar_dispatch_chunks",
		Help:    "Chunks per dispatch",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})

	dispatchUnits = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "graphpar_dispatch_units",
		Help:    "Units partitioned per dispatch",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})
)

// resultLabel classifies a dispatch error for the result counter label.
func resultLabel(err error) string {
	var taskErr *TaskError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.As(err, &taskErr):
		return "task_failure"
	case errors.Is(err, ErrReducerMismatch):
		return "reducer_mismatch"
	default:
		return "error"
	}
}
