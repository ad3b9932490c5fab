package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_api_request_duration_seconds",
			Help:    "Duration of requests from the console to the banking API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_api_requests_total",
			Help: "Requests from the console to the banking API.",
		},
		[]string{"method", "status"},
	)
)

// observe records one request. status 0 means the request never got a response.
func observe(method string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	requestDuration.WithLabelValues(method, label).Observe(elapsed.Seconds())
	requestsTotal.WithLabelValues(method, label).Inc()
}
