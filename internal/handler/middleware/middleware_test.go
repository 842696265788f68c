//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-console/internal/handler/httperr"
	"fleet-console/internal/handler/middleware"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/logger"
	testhttp "fleet-console/internal/testutil/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	r := gin.New()
	r.Use(middleware.CustomRecovery(logger.Discard()))
	r.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.Discard()))
	r.Use(middleware.NewLogger(logger.Discard(), cfg.Log).LoggingMiddleware())
	r.Use(middleware.ErrorHandler())
	return r
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	r := newEngine()
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	t.Run("incoming id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("missing id is generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.NotEmpty(t, seen)
		assert.NotEqual(t, "req-123", seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})
}

func TestErrorResponse_CarriesRequestID(t *testing.T) {
	r := newEngine()
	r.GET("/fail", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusConflict, assert.AnError, "Request is currently being processed", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("X-Request-ID", "req-9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	testhttp.AssertErrorResponse(t, w, http.StatusConflict, "Request is currently being processed")
	assert.Contains(t, w.Body.String(), `"requestId":"req-9"`)
}

func TestCustomRecovery(t *testing.T) {
	r := newEngine()
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	testhttp.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
}

func TestRequireJSON(t *testing.T) {
	r := newEngine()
	r.POST("/body", middleware.RequireJSON(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "json", contentType: "application/json", body: `{}`, wantStatus: http.StatusNoContent},
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `{}`, wantStatus: http.StatusNoContent},
		{name: "no body", contentType: "", body: "", wantStatus: http.StatusNoContent},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: "a=1", wantStatus: http.StatusUnsupportedMediaType},
		{name: "text", contentType: "text/plain", body: "hello", wantStatus: http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/body", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	r := newEngine()
	var deadline time.Time
	var hasDeadline bool
	r.GET("/slow", middleware.RequestTimeout(time.Second), func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})
	r.GET("/unbounded", middleware.RequestTimeout(0), func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	start := time.Now()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	require.True(t, hasDeadline)
	assert.WithinDuration(t, start.Add(time.Second), deadline, 500*time.Millisecond)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unbounded", nil))
	assert.False(t, hasDeadline)
}

func TestCORS_ExposesConsoleHeaders(t *testing.T) {
	r := newEngine()
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, "location")
	assert.Contains(t, exposed, "x-request-id")
}
