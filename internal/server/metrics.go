package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hanline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reconstructionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanline_reconstructions_total",
			Help: "Total number of reconstruction requests",
		},
		[]string{"path", "status"}, // path: fragments, flat, image
	)

	reconstructionTextLength = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hanline_reconstruction_text_length",
			Help:    "Length of reconstructed text in runes",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"path"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanline_cache_requests_total",
			Help: "Reconstruction cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanline_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hanline_upload_size_bytes",
			Help:    "Size of uploaded page images in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hanline_websocket_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hanline_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: received, sent
	)
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func recordReconstruction(path, status, text string) {
	reconstructionsTotal.WithLabelValues(path, status).Inc()
	if status == "ok" {
		reconstructionTextLength.WithLabelValues(path).Observe(float64(len([]rune(text))))
	}
}
