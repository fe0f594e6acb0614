// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "frontdesk_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_property_submissions_total",
			Help: "Total number of property submissions by outcome",
		},
		[]string{"sub_category", "outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_validation_failures_total",
			Help: "Total number of draft validation failures by error code",
		},
		[]string{"error_code"},
	)

	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_image_uploads_total",
			Help: "Total number of image uploads by outcome",
		},
		[]string{"outcome"},
	)

	ImageUploadsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "frontdesk_image_uploads_active",
			Help: "Number of image uploads currently in flight",
		},
	)

	LocationCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "frontdesk_location_cache_requests_total",
			Help: "Location dropdown cache lookups by result",
		},
		[]string{"result"},
	)
)
