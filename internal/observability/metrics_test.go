package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Metrics register against the default registry, so each test uses a unique
// namespace to avoid duplicate registration panics across test runs.

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(200))
	assert.Equal(t, "2xx", statusClass(204))
	assert.Equal(t, "3xx", statusClass(301))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "4xx", statusClass(405))
	assert.Equal(t, "5xx", statusClass(500))
	assert.Equal(t, "1xx", statusClass(100))
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetrics("news_test_http")

	m.RecordHTTPRequest("GET", "/api/articles", 200, 5*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/articles", 200, 7*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/articles/{article_id}", 404, time.Millisecond)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/articles", "200")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/articles/{article_id}", "404")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPResponsesByClass.WithLabelValues("2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPResponsesByClass.WithLabelValues("4xx")))
}

func TestRecordEntityOperations(t *testing.T) {
	m := NewMetrics("news_test_entity")

	m.RecordEntityOperation("article", "create")
	m.RecordEntityOperation("article", "create")
	m.RecordEntityOperationError("article", "get", "not_found")
	m.RecordVoteApplied("comment")

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.EntityOperationsTotal.WithLabelValues("article", "create")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.EntityOperationErrors.WithLabelValues("article", "get", "not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VotesApplied.WithLabelValues("comment")))
}
