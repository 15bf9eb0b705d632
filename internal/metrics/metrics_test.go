package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSummary(t *testing.T) {
	m := New()

	m.RecordSummary("generated", "", 120*time.Millisecond)
	m.RecordSummary("fallback", "timeout", 20*time.Second)
	m.RecordSummary("fallback", "timeout", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaries.WithLabelValues("generated", "none")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.summaries.WithLabelValues("fallback", "timeout")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRender("dashboard")
		m.RecordSummary("fallback", "no_data", time.Millisecond)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.RecordRender("dashboard")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aurora_inventory_renders_total{view="dashboard"} 1`)
}
