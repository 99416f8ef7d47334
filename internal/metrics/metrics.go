// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package metrics exposes Prometheus instrumentation for the engine:
// storage query performance, pagination paths, search bridge behavior,
// rating updates, the reference-data cache and the popularity job.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Storage metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playdex_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// Pagination & count service metrics
	PageRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_page_requests_total",
			Help: "Total number of page computations by execution path",
		},
		[]string{"path"}, // "scan", "search", "composed"
	)

	PageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playdex_page_duration_seconds",
			Help:    "Page computation duration in seconds by execution path",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"path"},
	)

	// Search bridge metrics
	SearchChunkQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playdex_search_chunk_queries_total",
			Help: "Total number of chunk queries issued to the search index",
		},
	)

	SearchQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playdex_search_query_duration_seconds",
			Help:    "Duration of individual search index queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit breaker metrics (search index)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playdex_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// Rating aggregate metrics
	RatingUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_rating_updates_total",
			Help: "Total number of applied rating votes",
		},
		[]string{"op"}, // "add", "remove"
	)

	RatingUpdateErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_rating_update_errors_total",
			Help: "Total number of failed rating updates",
		},
		[]string{"op"},
	)

	// Reference-data cache metrics
	RefCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playdex_refdata_cache_hits_total",
			Help: "Total number of reference-data cache hits",
		},
	)

	RefCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playdex_refdata_cache_misses_total",
			Help: "Total number of reference-data cache misses",
		},
	)

	RefCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playdex_refdata_cache_evictions_total",
			Help: "Total number of reference-data cache evictions",
		},
	)

	// Popularity job metrics
	PopularityRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playdex_popularity_runs_total",
			Help: "Total number of popularity recompute runs by outcome",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	PopularityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playdex_popularity_run_duration_seconds",
			Help:    "Duration of popularity recompute runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)
)
