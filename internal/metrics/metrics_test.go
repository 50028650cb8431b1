package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObserveRequest(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest(http.MethodGet, "/api/v1/emails", 200, 15*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/api/v1/emails", 200, 20*time.Millisecond)
	c.ObserveRequest(http.MethodPost, "/api/v1/send", 502, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `mercury_http_requests_total{method="GET",route="/api/v1/emails",status="200"} 2`)
	assert.Contains(t, body, `mercury_http_requests_total{method="POST",route="/api/v1/send",status="502"} 1`)
	assert.Contains(t, body, "mercury_http_request_duration_seconds")
}
