// Package metrics provides Prometheus metrics for Fyyur.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks handled requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fyyur",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fyyur",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// ListingsCreatedTotal counts venues, artists and shows listed
	ListingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fyyur",
			Subsystem: "listings",
			Name:      "created_total",
			Help:      "Total number of venues, artists and shows listed",
		},
		[]string{"kind"},
	)

	// EventsPublishedTotal counts show.booked publications by outcome
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fyyur",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of booking events published by status",
		},
		[]string{"status"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fyyur",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)
