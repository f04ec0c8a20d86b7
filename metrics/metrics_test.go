package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := New()

	m.ObserveScrape("listing", "ok", 2*time.Second)
	m.ObserveScrape("listing", "SCRAPE_TIMEOUT", time.Second)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.IncStreamEvent("summary")

	body := scrape(t, m)
	assert.Contains(t, body, `pagelens_scrapes_total{outcome="ok",profile="listing"} 1`)
	assert.Contains(t, body, `pagelens_scrapes_total{outcome="SCRAPE_TIMEOUT",profile="listing"} 1`)
	assert.Contains(t, body, `pagelens_scrape_duration_seconds_count{profile="listing"} 2`)
	assert.Contains(t, body, "pagelens_sessions_open 1")
	assert.Contains(t, body, `pagelens_stream_events_total{type="summary"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveScrape("website", "ok", time.Second)
		m.SessionOpened()
		m.SessionClosed()
		m.IncStreamEvent("done")
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.SessionOpened()

	assert.Contains(t, scrape(t, m), "pagelens_sessions_open 1")
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
