// Package metrics exposes Prometheus instrumentation for searches and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeHit     = "hit"     // At least one result
	OutcomeEmpty   = "empty"   // Zero results
	OutcomeUnknown = "unknown" // Unknown domain or stack
	OutcomeError   = "error"   // Collection could not be loaded
)

// Metrics holds the search and HTTP collectors. A nil *Metrics records nothing.
type Metrics struct {
	searchesTotal       *prometheus.CounterVec
	searchDuration      *prometheus.HistogramVec
	searchResults       *prometheus.HistogramVec
	corpusDocuments     *prometheus.GaugeVec
	detectionsTotal     *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "styleguide",
				Name:      "searches_total",
				Help:      "Total number of searches",
			},
			[]string{"kind", "selector", "outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "styleguide",
				Name:      "search_duration_seconds",
				Help:      "Search duration in seconds, including collection load and indexing",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"kind"},
		),
		searchResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "styleguide",
				Name:      "search_results",
				Help:      "Number of results returned per search",
				Buckets:   []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
			},
			[]string{"kind"},
		),
		corpusDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "styleguide",
				Name:      "corpus_documents",
				Help:      "Number of documents indexed by the latest search of a collection",
			},
			[]string{"kind", "selector"},
		),
		detectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "styleguide",
				Name:      "domain_detections_total",
				Help:      "Total number of auto-detected domains",
			},
			[]string{"domain"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "styleguide",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "styleguide",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(
		m.searchesTotal,
		m.searchDuration,
		m.searchResults,
		m.corpusDocuments,
		m.detectionsTotal,
		m.httpRequestDuration,
		m.httpRequestsTotal,
	)
	return m
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(kind, selector, outcome string, duration time.Duration, results int) {
	if m == nil {
		return
	}
	m.searchesTotal.WithLabelValues(kind, selector, outcome).Inc()
	m.searchDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome == OutcomeHit || outcome == OutcomeEmpty {
		m.searchResults.WithLabelValues(kind).Observe(float64(results))
	}
}

// ObserveCorpus records the size of an indexed collection.
func (m *Metrics) ObserveCorpus(kind, selector string, documents int) {
	if m == nil {
		return
	}
	m.corpusDocuments.WithLabelValues(kind, selector).Set(float64(documents))
}

// ObserveDetection records a domain chosen by auto-detection.
func (m *Metrics) ObserveDetection(domain string) {
	if m == nil {
		return
	}
	m.detectionsTotal.WithLabelValues(domain).Inc()
}

// Middleware records HTTP request duration and count.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		// Use the route pattern to keep label cardinality bounded
		path := normalizePath(c.FullPath())
		method := c.Request.Method

		m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	}
}

// normalizePath normalizes paths to prevent high cardinality in metrics labels.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
