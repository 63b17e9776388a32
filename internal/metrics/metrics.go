// Bibliograph - Book Recommendation Serving API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bibliograph

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// All collectors are registered with the default registry via promauto,
// so importing this package is enough to make them visible.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts API requests by method, path pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bibliograph",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bibliograph",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds, by method and route.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// HTTPActiveRequests tracks in-flight requests.
	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bibliograph",
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// RecommendationsTotal counts served recommendations by method
	// (collaborative_filtering, item_similarity, matrix_factorization,
	// popularity_based) and outcome (ok, empty, error).
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bibliograph",
			Subsystem: "recommend",
			Name:      "requests_total",
			Help:      "Recommendation queries served, by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	// RecommendationDuration observes recommendation computation latency.
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bibliograph",
			Subsystem: "recommend",
			Name:      "duration_seconds",
			Help:      "Recommendation computation latency in seconds, by method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// ArtifactLoaded reports 1 when the named artifact is loaded, 0 otherwise.
	ArtifactLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bibliograph",
			Subsystem: "artifact",
			Name:      "loaded",
			Help:      "Whether the named artifact is loaded (1) or missing (0).",
		},
		[]string{"artifact"},
	)

	// ArtifactLoadDuration observes artifact load time by artifact name.
	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bibliograph",
			Subsystem: "artifact",
			Name:      "load_duration_seconds",
			Help:      "Time taken to load each artifact from disk.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"artifact"},
	)

	// CatalogSize reports the number of books in the loaded catalog.
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bibliograph",
			Subsystem: "artifact",
			Name:      "catalog_books",
			Help:      "Number of books in the loaded catalog.",
		},
	)
)

// RecordRecommendation records one recommendation query outcome.
func RecordRecommendation(method, outcome string, seconds float64) {
	RecommendationsTotal.WithLabelValues(method, outcome).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(seconds)
}

// SetArtifactLoaded updates the loaded gauge for an artifact.
func SetArtifactLoaded(name string, loaded bool) {
	v := 0.0
	if loaded {
		v = 1.0
	}
	ArtifactLoaded.WithLabelValues(name).Set(v)
}
