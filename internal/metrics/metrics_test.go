package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObservePurchase(nil, 1_000)
	m.ObservePurchase(nil, 500)
	m.ObservePurchase(errors.New("hard cap reached"), 9_999)
	m.ObserveClaim(nil, 42)
	m.ObserveReport(3)
	m.ObserveRequest(http.MethodGet, "/api/v1/sales/:id", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.purchases.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases.WithLabelValues("rejected")))
	assert.Equal(t, 1_500.0, testutil.ToFloat64(m.raisedTotal))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.releasedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.staleRounds))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/sales/:id", "200")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObservePurchase(nil, 1)
		m.ObserveClaim(nil, 1)
		m.ObserveReport(1)
		m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, 0)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveClaim(nil, 7)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "launchpad_released_tokens_total 7"))
	assert.Contains(t, body, "go_goroutines")
}
