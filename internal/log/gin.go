package log

import (
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetGinDebugPrintRouteFunc(logger *zap.Logger) {
	const callerSkip = 2
	logger = logger.WithOptions(zap.AddCallerSkip(callerSkip))
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debug("route registered",
			zap.String("method", httpMethod),
			zap.String("route", absolutePath),
			zap.String("handler", path.Base(handlerName)),
			zap.Int("chain", nuHandlers),
		)
	}
}

// RequestUserFunc names the signed-in user of a finished request, or "".
type RequestUserFunc func(c *gin.Context) string

func DefaultGinLoggerMiddleware(user RequestUserFunc) gin.HandlerFunc {
	return NewGinLoggerMiddleware(GlobalLogger, user)
}

// NewGinLoggerMiddleware logs one line per request once the handlers ran.
// Server errors and errors attached with c.Error are logged at error level,
// client errors at info and the rest at debug.
func NewGinLoggerMiddleware(logger *zap.Logger, user RequestUserFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if user != nil {
			if id := user(c); id != "" {
				fields = append(fields, zap.String("user", id))
			}
		}

		switch {
		case len(c.Errors) != 0:
			logger.Error(http.StatusText(status), append(fields, zap.Error(c.Errors.Last().Err))...)
		case status >= http.StatusInternalServerError:
			logger.Error(http.StatusText(status), fields...)
		case status >= http.StatusBadRequest:
			logger.Info(http.StatusText(status), fields...)
		default:
			logger.Debug(http.StatusText(status), fields...)
		}
	}
}
