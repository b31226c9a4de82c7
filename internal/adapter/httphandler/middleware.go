package httphandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests served, by route pattern and status code.",
		},
		[]string{"pattern", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pattern"},
	)
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// WithMetrics records request counts and latency per route pattern.
func WithMetrics(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		requestsTotal.WithLabelValues(
			pattern, strconv.Itoa(sw.code),
		).Inc()
		requestDuration.WithLabelValues(pattern).
			Observe(time.Since(start).Seconds())
	}
	return http.HandlerFunc(hf)
}
