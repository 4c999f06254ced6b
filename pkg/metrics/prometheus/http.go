package prometheus

import (
	"strconv"
	"time"

	"github.com/marmos91/staticd/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// httpMetrics is the Prometheus implementation of metrics.HTTPMetrics.
type httpMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	bytesTransferred prometheus.Counter
	queueDepth       prometheus.Gauge
}

// NewHTTPMetrics creates a Prometheus-backed HTTPMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled (InitRegistry
// not called).
func NewHTTPMetrics() metrics.HTTPMetrics {
	if !metrics.IsEnabled() {
		return metrics.NewNoopHTTPMetrics()
	}

	reg := metrics.GetRegistry()

	return &httpMetrics{
		requestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "staticd_http_requests_total",
				Help: "Total number of HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "staticd_http_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
				Buckets: []float64{
					0.0001, // 100µs
					0.001,  // 1ms
					0.01,   // 10ms
					0.1,    // 100ms
					1,      // 1s
					10,     // 10s
				},
			},
			[]string{"method"},
		),
		bytesTransferred: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "staticd_http_response_bytes_total",
				Help: "Total number of response body bytes written",
			},
		),
		queueDepth: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "staticd_pool_queue_depth",
				Help: "Worker pool backlog observed at dispatch time",
			},
		),
	}
}

func (m *httpMetrics) RecordRequest(method string, status int, elapsed time.Duration, bytes int) {
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
	m.bytesTransferred.Add(float64(bytes))
}

func (m *httpMetrics) RecordQueueDepth(depth int) {
	m.queueDepth.Set(float64(depth))
}
