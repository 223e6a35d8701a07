package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Upstream YouTube API metrics
	YouTubeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_api_requests_total",
			Help: "Total number of YouTube Data API requests",
		},
		[]string{"endpoint", "status"},
	)

	YouTubeRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "youtube_api_retries_total",
			Help: "Total number of single-shot retries after overload responses",
		},
	)

	CommentsFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comments_fetched_total",
			Help: "Total number of comment records fetched",
		},
		[]string{"kind"},
	)

	FetchProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fetch_progress_records",
			Help: "Cumulative records retrieved by the most recent page of the running fetch",
		},
	)

	// Generation endpoint metrics
	GeminiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_requests_total",
			Help: "Total number of generation endpoint calls",
		},
		[]string{"status"},
	)

	GeminiRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gemini_request_duration_seconds",
			Help:    "Generation endpoint call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Session metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of live user sessions",
		},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version"},
	)
)

// Init sets static application labels.
func Init(serviceName, version string) {
	ApplicationInfo.WithLabelValues(serviceName, version).Set(1)
}
