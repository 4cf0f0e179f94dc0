// Package metrics provides Prometheus metrics for the newsroom services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestFiles counts processed report files by outcome: created,
	// updated, unchanged or failed.
	IngestFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_ingest_files_total",
			Help: "Total number of report files processed, by outcome",
		},
		[]string{"outcome"},
	)

	// IngestRuns counts completed ingestion passes.
	IngestRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsroom_ingest_runs_total",
			Help: "Total number of completed ingest runs",
		},
	)

	// IngestDuration observes how long a full ingestion pass takes.
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsroom_ingest_duration_seconds",
			Help:    "Duration of ingest runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ConnectionsTotal tracks the size of the connection graph after the
	// most recent rebuild.
	ConnectionsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsroom_connections_total",
			Help: "Number of report connections after the last rebuild",
		},
	)

	// HTTPRequests counts API requests by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_http_requests_total",
			Help: "Total number of HTTP requests, by route and status",
		},
		[]string{"route", "status"},
	)

	// SearchQueries counts full-text search queries.
	SearchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsroom_search_queries_total",
			Help: "Total number of full-text search queries",
		},
	)
)
