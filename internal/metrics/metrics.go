// Package metrics provides Prometheus metrics for the refresh pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal counts finished refreshes by terminal status.
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hackernews",
			Name:      "refresh_total",
			Help:      "Total number of refresh cycles by outcome",
		},
		[]string{"status"},
	)

	// RefreshDuration measures refresh wall time.
	RefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hackernews",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of refresh cycles in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	// StoriesProcessed counts stories taken off the fetch stream.
	StoriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hackernews",
			Name:      "stories_processed_total",
			Help:      "Stories consumed from the fetch stream by result",
		},
		[]string{"result"},
	)

	// EnrichmentTotal counts sentiment lookups.
	EnrichmentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hackernews",
			Name:      "enrichment_total",
			Help:      "Title sentiment lookups by result",
		},
		[]string{"result"},
	)

	// FeedSize tracks the number of stories in the live feed.
	FeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hackernews",
			Name:      "feed_size",
			Help:      "Number of stories currently in the live feed",
		},
	)

	// Refreshing is 1 while a refresh is running.
	Refreshing = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hackernews",
			Name:      "refresh_in_progress",
			Help:      "Refresh in progress (1 = running, 0 = idle)",
		},
	)
)
