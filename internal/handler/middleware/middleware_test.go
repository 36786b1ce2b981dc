//go:build unit

package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"space-booking/internal/handler/httperr"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/pkg/config"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/pkg/metrics"
	"space-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	engine := newEngine()
	logger := middleware.NewLogger(config.NewTestConfig().Log)
	engine.Use(logger.LoggingMiddleware())

	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = middleware.GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ping", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses a caller supplied id", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
			map[string]string{"X-Request-ID": "trace-123"})
		assert.Equal(t, "trace-123", seen)
		assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		long := strings.Repeat("x", 65)
		rec := httptest.PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
			map[string]string{"X-Request-ID": long})
		assert.NotEqual(t, long, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	})
}

func TestPrometheusMiddleware_LabelsByRouteTemplate(t *testing.T) {
	engine := newEngine()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	engine.Use(middleware.PrometheusMiddleware(m))
	engine.GET("/api/spaces/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	httptest.PerformRequest(t, engine, http.MethodGet, "/api/spaces/a", nil)
	httptest.PerformRequest(t, engine, http.MethodGet, "/api/spaces/b", nil)
	httptest.PerformRequest(t, engine, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/spaces/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestErrorHandler(t *testing.T) {
	engine := newEngine()
	engine.Use(middleware.ErrorHandler())

	engine.GET("/public", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict}
		resp.Error.Message = "slot taken"
		_ = c.Error(&gin.Error{Err: errors.New("conflict"), Type: gin.ErrorTypePublic, Meta: resp})
	})
	engine.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	engine.GET("/written", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusNotFound, errors.New("missing"), "space not found", nil)
	})
	engine.GET("/ok", func(c *gin.Context) {})

	t.Run("renders the public response left by a handler", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/public", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "slot taken")
	})

	t.Run("hides private errors behind 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/private", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("keeps a response the handler already wrote", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/written", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "space not found")
	})

	t.Run("leaves error-free requests alone", func(t *testing.T) {
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ok", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func captureSlog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestErrorHandler_LogsServerErrors(t *testing.T) {
	engine := newEngine()
	engine.Use(middleware.ErrorHandler())
	engine.GET("/db", func(c *gin.Context) {
		httperr.AbortWithUseCaseError(c, errors.New("db down"))
	})
	engine.GET("/missing", func(c *gin.Context) {
		httperr.AbortWithUseCaseError(c, errs.Wrap(errs.ErrNotFound, "space not found"))
	})

	t.Run("500 is logged with the underlying error", func(t *testing.T) {
		logs := captureSlog(t)

		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/db", nil)

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
		assert.Contains(t, logs.String(), "request failed")
		assert.Contains(t, logs.String(), "db down")
		assert.Contains(t, logs.String(), "status=500")
	})

	t.Run("client errors are not logged", func(t *testing.T) {
		logs := captureSlog(t)

		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/missing", nil)

		httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "space not found")
		assert.NotContains(t, logs.String(), "request failed")
	})
}

func TestCustomRecovery(t *testing.T) {
	engine := newEngine()
	engine.Use(middleware.CustomRecovery())
	engine.GET("/panic", func(*gin.Context) { panic("unexpected") })

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/panic", nil)
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
}

func TestCORSMiddleware(t *testing.T) {
	base := config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}

	t.Run("echoes an allowed origin", func(t *testing.T) {
		engine := newEngine()
		engine.Use(middleware.NewCORSMiddleware(base))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
			map[string]string{"Origin": "http://localhost:3000"})
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
	})

	t.Run("wildcard allows every origin without credentials", func(t *testing.T) {
		cfg := base
		cfg.AllowOrigins = []string{"*"}
		engine := newEngine()
		engine.Use(middleware.NewCORSMiddleware(cfg))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
			map[string]string{"Origin": "https://example.org"})
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	for name, origins := range map[string][]string{
		"no origins":    nil,
		"blank entries": {"", " "},
	} {
		t.Run(name+" disables CORS instead of panicking", func(t *testing.T) {
			cfg := base
			cfg.AllowOrigins = origins
			engine := newEngine()
			require.NotPanics(t, func() { engine.Use(middleware.NewCORSMiddleware(cfg)) })
			engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := httptest.PerformRequestWithHeaders(t, engine, http.MethodGet, "/ping", nil,
				map[string]string{"Origin": "http://localhost:3000"})
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
