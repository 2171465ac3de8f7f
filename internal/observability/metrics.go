package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the news service. HTTP metrics
// are labeled by the chi route pattern rather than the raw path so that
// /api/articles/1 and /api/articles/2 share a series. All counters and
// histograms are registered via promauto with the default registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, route pattern, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request handling duration in seconds.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPResponsesByClass counts responses by status class (2xx, 4xx, 5xx).
	HTTPResponsesByClass *prometheus.CounterVec

	// EntityOperationsTotal counts entity access operations, labeled by entity and operation.
	EntityOperationsTotal *prometheus.CounterVec

	// EntityOperationErrors counts failed entity access operations, labeled by entity, operation, and error kind.
	EntityOperationErrors *prometheus.CounterVec

	// ArticlesListed observes the page sizes returned by article list queries.
	ArticlesListed prometheus.Histogram

	// VotesApplied counts vote increments applied, labeled by entity.
	VotesApplied *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		HTTPResponsesByClass: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_by_class_total",
			Help:      "Total number of HTTP responses by status class",
		}, []string{"class"}),
		EntityOperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Total number of entity access operations",
		}, []string{"entity", "operation"}),
		EntityOperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operation_errors_total",
			Help:      "Total number of failed entity access operations",
		}, []string{"entity", "operation", "kind"}),
		ArticlesListed: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "articles_listed_page_size",
			Help:      "Number of articles returned per list query",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		VotesApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_applied_total",
			Help:      "Total number of vote increments applied",
		}, []string{"entity"}),
	}
}

// RecordHTTPRequest records an HTTP request outcome.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.HTTPResponsesByClass.WithLabelValues(statusClass(status)).Inc()
}

// RecordEntityOperation records a successful entity access operation.
func (m *Metrics) RecordEntityOperation(entity, operation string) {
	m.EntityOperationsTotal.WithLabelValues(entity, operation).Inc()
}

// RecordEntityOperationError records a failed entity access operation.
func (m *Metrics) RecordEntityOperationError(entity, operation, kind string) {
	m.EntityOperationErrors.WithLabelValues(entity, operation, kind).Inc()
}

// RecordArticlesListed records the page size of an article list result.
func (m *Metrics) RecordArticlesListed(count int) {
	m.ArticlesListed.Observe(float64(count))
}

// RecordVoteApplied records a vote increment on an entity.
func (m *Metrics) RecordVoteApplied(entity string) {
	m.VotesApplied.WithLabelValues(entity).Inc()
}

// statusClass buckets a status code into 1xx..5xx.
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
