// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the content
// comparator.
//
// # Description
//
// Metrics cover the comparison pipeline end to end:
//   - Comparison counters by diff status
//   - Page fetch duration and failures
//   - Dictionary load counters by language and outcome
//   - Link check counters by result
//
// # Integration
//
// Metrics are exposed on /metrics. Use with Prometheus + Grafana for
// dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal
// locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "aleutian"

// Subsystem for comparator metrics
const comparatorSubsystem = "content_compare"

// =============================================================================
// Metric Definitions
// =============================================================================

var (
	// ComparisonsTotal counts completed comparisons by diff status.
	// Labels: status (PASS, FAIL)
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: comparatorSubsystem,
			Name:      "comparisons_total",
			Help:      "Total completed comparisons by diff status",
		},
		[]string{"status"},
	)

	// FetchDuration measures how long fetching the live page text takes.
	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: comparatorSubsystem,
			Name:      "fetch_duration_seconds",
			Help:      "Time to fetch and extract the live page text",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// FetchFailures counts page fetches that returned an error.
	FetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: comparatorSubsystem,
			Name:      "fetch_failures_total",
			Help:      "Total page fetches that failed",
		},
	)

	// DictionaryLoads counts dictionary loads by language and outcome.
	// Labels: language, outcome (success, error)
	DictionaryLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: comparatorSubsystem,
			Name:      "dictionary_loads_total",
			Help:      "Total spelling dictionary loads by language and outcome",
		},
		[]string{"language", "outcome"},
	)

	// LinkChecks counts individual URL probes by result.
	// Labels: result (ok, broken, timeout, error)
	LinkChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: comparatorSubsystem,
			Name:      "link_checks_total",
			Help:      "Total link probes by result",
		},
		[]string{"result"},
	)
)

// RecordDictionaryLoad records a dictionary load attempt.
//
// # Inputs
//
//   - language: The dictionary language tag.
//   - success: Whether the load succeeded.
func RecordDictionaryLoad(language string, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	DictionaryLoads.WithLabelValues(language, outcome).Inc()
}
