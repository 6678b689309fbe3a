package log

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(NewGinLoggerMiddleware(zap.New(core, zap.AddCaller()), func(c *gin.Context) string {
		return c.GetString("uid")
	}))
	r.GET("/post/byUser/:userId", func(c *gin.Context) {
		c.Set("uid", "u1")
		c.String(http.StatusOK, "ok")
	})
	r.POST("/create", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	for _, target := range []string{"/post/byUser/u1", "/boom", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/create", nil))

	entries := logs.All()
	require.Len(t, entries, 4)
	for _, e := range entries {
		require.True(t, e.Caller.Defined)
		assert.True(t, strings.HasSuffix(e.Caller.File, "log/gin.go"), "caller is %s", e.Caller.File)
	}

	ok := entries[0].ContextMap()
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "/post/byUser/:userId", ok["route"])
	assert.Equal(t, "/post/byUser/u1", ok["path"])
	assert.EqualValues(t, http.StatusOK, ok["status"])
	assert.EqualValues(t, 2, ok["bytes"])
	assert.Equal(t, "u1", ok["user"])

	boom := entries[1].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "db down", boom["error"])
	assert.NotContains(t, boom, "user")

	assert.Equal(t, "unmatched", entries[2].ContextMap()["route"])
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}
