// Package metrics instruments outgoing model API calls for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelhub",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of model API requests",
		},
		[]string{"op", "method", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelhub",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Duration of model API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op", "method", "status"},
	)

	inflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "modelhub",
			Subsystem: "client",
			Name:      "inflight_requests",
			Help:      "In-flight model API requests",
		},
		[]string{"op"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelhub",
			Subsystem: "client",
			Name:      "errors_total",
			Help:      "Failed model API calls by error kind",
		},
		[]string{"op", "kind"},
	)

	uploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "modelhub",
			Subsystem: "client",
			Name:      "upload_bytes_total",
			Help:      "Bytes of model payload sent in upload requests",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, inflight, errorsTotal, uploadBytes)
}

// StatusError is the status label used when no HTTP response was received.
const StatusError = "error"

// Track marks a request for op as in flight. The returned func records the
// outcome; pass status 0 when the transport failed.
func Track(op, method string) func(status int) {
	inflight.WithLabelValues(op).Inc()
	start := time.Now()
	return func(status int) {
		inflight.WithLabelValues(op).Dec()
		label := StatusError
		if status > 0 {
			label = itoa(status)
		}
		requestsTotal.WithLabelValues(op, method, label).Inc()
		requestDuration.WithLabelValues(op, method, label).Observe(time.Since(start).Seconds())
	}
}

// IncError counts a failed call of the given kind (e.g. transport, rejected).
func IncError(op, kind string) {
	if kind == "" {
		kind = "unspecified"
	}
	errorsTotal.WithLabelValues(op, kind).Inc()
}

// AddUploadBytes records the size of an uploaded model file.
func AddUploadBytes(n int) {
	if n > 0 {
		uploadBytes.Add(float64(n))
	}
}

// fast integer to ascii for small set of status codes
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
