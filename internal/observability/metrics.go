package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "serframe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests to the status server.",
		},
		[]string{"bridge", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "serframe",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"bridge", "method", "path", "status"},
	)
	framesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "serframe",
			Subsystem: "link",
			Name:      "frames_received_total",
			Help:      "Frames decoded and verified off the link.",
		},
		[]string{"bridge", "endpoint"},
	)
	framesTransmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "serframe",
			Subsystem: "link",
			Name:      "frames_transmitted_total",
			Help:      "Frames serialised onto the link.",
		},
		[]string{"bridge", "endpoint"},
	)
	bytesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "serframe",
			Subsystem: "link",
			Name:      "bytes_skipped_total",
			Help:      "Bytes discarded while resynchronising; a link quality signal.",
		},
		[]string{"bridge", "endpoint"},
	)
	receiveErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "serframe",
			Subsystem: "link",
			Name:      "receive_errors_total",
			Help:      "Receive attempts that surfaced a protocol error.",
		},
		[]string{"bridge", "endpoint", "kind"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			framesReceived, framesTransmitted, bytesSkipped, receiveErrors,
		)
	})
}

func RecordHTTPRequest(bridge, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(bridge, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(bridge, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordFrameReceived(bridge, endpoint string) {
	RegisterMetrics()
	framesReceived.WithLabelValues(bridge, endpoint).Inc()
}

func RecordFrameTransmitted(bridge, endpoint string) {
	RegisterMetrics()
	framesTransmitted.WithLabelValues(bridge, endpoint).Inc()
}

func RecordBytesSkipped(bridge, endpoint string, n uint32) {
	RegisterMetrics()
	bytesSkipped.WithLabelValues(bridge, endpoint).Add(float64(n))
}

func RecordReceiveError(bridge, endpoint, kind string) {
	RegisterMetrics()
	receiveErrors.WithLabelValues(bridge, endpoint, kind).Inc()
}
