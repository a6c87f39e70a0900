// Copyright (c) 2026 Soul of Tanzania. All rights reserved.

// Package metrics exposes Prometheus instrumentation for the HTTP layer.
//
// # Architecture
//
// Request counters and latency histograms are registered once per process and
// labelled by method, route pattern, and status code. The /metrics endpoint is
// served by the standard promhttp handler and is not part of the public API
// surface (it should be firewalled to the scrape network).
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// requestCounter counts all HTTP requests with labels.
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// requestDuration records request duration in seconds.
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// statusCategoryCounter counts responses by status class (2xx, 4xx, 5xx).
	statusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"service", "category", "method", "path"},
	)
)

// HTTP holds configuration and state for HTTP metrics collection.
type HTTP struct {
	serviceName string
}

// NewHTTP creates a new HTTP metrics collector and registers its collectors.
func NewHTTP(serviceName string) *HTTP {
	prometheus.MustRegister(requestCounter, requestDuration, statusCategoryCounter)
	return &HTTP{serviceName: serviceName}
}

// Middleware records request count, status class, and latency for every request.
//
// The route pattern (e.g. "/api/v1/packages/{id}") is used as the path label
// rather than the raw URL, keeping label cardinality bounded.
func (m *HTTP) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			path := routePattern(request)
			statusStr := strconv.Itoa(recorder.status)

			requestCounter.WithLabelValues(m.serviceName, request.Method, path, statusStr).Inc()
			if category := statusCategory(recorder.status); category != "" {
				statusCategoryCounter.WithLabelValues(m.serviceName, category, request.Method, path).Inc()
			}

			requestDuration.WithLabelValues(m.serviceName, request.Method, path, statusStr).
				Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns the HTTP handler that exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusCategory maps a status code to its class label.
func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// routePattern resolves the chi route pattern for the matched request.
func routePattern(request *http.Request) string {
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
		if pattern := routeContext.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return request.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
