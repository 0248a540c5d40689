package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/123", nil))

	body := scrape(t)
	assert.Contains(t, body, `careerlens_http_requests_total{method="GET",path="/api/health",status="200"} 3`)
	assert.Contains(t, body, `careerlens_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.Contains(t, body, "careerlens_http_in_flight_requests 0")
}

func TestObserveModelCall(t *testing.T) {
	ObserveModelCall("AnalysisService.RunReview", "ok", 1500*time.Millisecond)
	ObserveModelCall("AnalysisService.RunReview", "quota_exceeded", 200*time.Millisecond)

	body := scrape(t)
	assert.Contains(t, body, `careerlens_llm_call_duration_seconds_count{op="AnalysisService.RunReview",outcome="ok"} 1`)
	assert.Contains(t, body, `careerlens_llm_call_duration_seconds_count{op="AnalysisService.RunReview",outcome="quota_exceeded"} 1`)
}
