package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveLogged(t *testing.T, level zapcore.Level, register func(*gin.Engine), method, target string) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	register(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w, recorded
}

func requestEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("request").All()
	require.NotEmpty(t, entries, "request log entry should exist")
	return entries[0]
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	w, recorded := serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
	}, http.MethodGet, "/test")

	assert.Equal(t, http.StatusOK, w.Code)

	entry := requestEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "client_ip")
	assert.Contains(t, fields, "user_agent")
	assert.Contains(t, fields, "method")
	assert.Contains(t, fields, "path")
}

func TestGinMiddleware_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	entry := requestEntry(t, recorded)
	assert.Equal(t, "test-req-123", entry.ContextMap()["request_id"])
}

func TestGinMiddleware_IncludesUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		c.Set("jwt_user_id", "8f14e45f-ceea-467f-a0f2-2fdd9f6df4a1")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	entry := requestEntry(t, recorded)
	assert.Equal(t, "8f14e45f-ceea-467f-a0f2-2fdd9f6df4a1", entry.ContextMap()["user_id"])
}

func TestGinMiddleware_WarnsOnClientError(t *testing.T) {
	_, recorded := serveLogged(t, zapcore.WarnLevel, func(r *gin.Engine) {
		r.GET("/error", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		})
	}, http.MethodGet, "/error")

	entry := requestEntry(t, recorded)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGinMiddleware_ErrorsOnServerError(t *testing.T) {
	_, recorded := serveLogged(t, zapcore.ErrorLevel, func(r *gin.Engine) {
		r.GET("/error", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		})
	}, http.MethodGet, "/error")

	entry := requestEntry(t, recorded)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestGinMiddleware_LogsQueryString(t *testing.T) {
	_, recorded := serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/search", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	}, http.MethodGet, "/search?q=test&page=1")

	entry := requestEntry(t, recorded)
	query, ok := entry.ContextMap()["query"].(string)
	require.True(t, ok, "query should be in log fields")
	assert.Contains(t, query, "q=test")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, recorded.FilterMessage("panic recovered").All())
}

func TestGetGinLogger(t *testing.T) {
	var retrieved *zap.Logger
	_, _ = serveLogged(t, zapcore.InfoLevel, func(r *gin.Engine) {
		r.GET("/test", func(c *gin.Context) {
			retrieved = GetGinLogger(c)
			c.Status(http.StatusOK)
		})
	}, http.MethodGet, "/test")

	assert.NotNil(t, retrieved)
}

func TestGetGinLogger_OutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrieved *zap.Logger
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("noop")
	})
}
