// Package metrics exposes Prometheus collectors for the catalog service.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	portalRequestsTotal         *prometheus.CounterVec
	catalogBuildsTotal          *prometheus.CounterVec
	catalogBuildDurationSeconds prometheus.Histogram
	catalogServices             prometheus.Gauge
	catalogKeywords             prometheus.Gauge
	httpRequestsTotal           *prometheus.CounterVec
	httpRequestDurationSeconds  *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		portalRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_portal_requests_total",
				Help: "Total portal document fetches, labeled by host and outcome.",
			},
			[]string{"host", "outcome"},
		)

		catalogBuildsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_catalog_builds_total",
				Help: "Total catalog builds, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		catalogBuildDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "explorer_catalog_build_duration_seconds",
				Help:    "Histogram of end-to-end catalog build latencies.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		)

		catalogServices = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "explorer_catalog_services",
				Help: "Number of services in the most recent catalog build.",
			},
		)

		catalogKeywords = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "explorer_catalog_keywords",
				Help: "Number of keywords in the most recent catalog build.",
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// SanitizeHost extracts a lowercase hostname from a URL.
// It returns "unknown" if the URL is invalid.
func SanitizeHost(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePortalRequest counts a portal fetch by host and outcome.
func ObservePortalRequest(rawURL string, outcome string) {
	portalRequestsTotal.WithLabelValues(SanitizeHost(rawURL), outcome).Inc()
}

// ObserveCatalogBuild records one catalog build.
func ObserveCatalogBuild(outcome string, duration time.Duration, services, keywords int) {
	catalogBuildsTotal.WithLabelValues(outcome).Inc()
	catalogBuildDurationSeconds.Observe(duration.Seconds())
	if outcome == "ok" {
		catalogServices.Set(float64(services))
		catalogKeywords.Set(float64(keywords))
	}
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
