package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gateway_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gateway_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Transcoding metrics
var (
	TranscodeSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gateway_transcode_sessions_active",
			Help: "Number of ffmpeg processes currently streaming",
		},
	)

	TranscodeSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_transcode_sessions_total",
			Help: "Total number of transcode sessions by outcome",
		},
		[]string{"outcome"}, // "completed", "abnormal_exit", "canceled", "error"
	)

	TranscodeBytesStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gateway_transcode_bytes_streamed_total",
			Help: "Total bytes of transcoder output delivered to clients",
		},
	)

	TranscodeSpawnFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gateway_transcode_spawn_failures_total",
			Help: "Total number of failed ffmpeg process spawns",
		},
	)
)

// Image optimization metrics
var (
	ImageOptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_image_optimizations_total",
			Help: "Total number of image optimizations",
		},
		[]string{"status"}, // "success", "error"
	)

	ImageOptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_gateway_image_optimization_duration_seconds",
			Help:    "Image optimization duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Filesystem metrics
var (
	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors",
		},
		[]string{"operation"}, // "stat", "open"
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gateway_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)
)

// Session outcome label values.
const (
	OutcomeCompleted    = "completed"
	OutcomeAbnormalExit = "abnormal_exit"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{OutcomeCompleted, OutcomeAbnormalExit, OutcomeCanceled, OutcomeError} {
		TranscodeSessionsTotal.WithLabelValues(outcome)
	}
	for _, status := range []string{"success", "error"} {
		ImageOptimizationsTotal.WithLabelValues(status)
	}
	for _, op := range []string{"stat", "open"} {
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
	}
}
