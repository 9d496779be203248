package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/pkg/ctxmeta"
)

// quietRoutes не логируются: их дёргают пробы и Prometheus.
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger: одна строка на запрос после обработчика. request_id и trace_id
// добавляет сам логгер из контекста; 5xx пишутся на уровне Warn.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()
		span, _ := ctxmeta.SpanIDFromContext(ctx)

		logf := log.Infof
		if status >= 500 {
			logf = log.Warnf
		}
		logf(ctx, "http %s %s status=%d duration=%s in=%d out=%d ip=%s span=%s errors=%q",
			c.Request.Method, route, status, time.Since(start),
			c.Request.ContentLength, c.Writer.Size(), c.ClientIP(), span,
			c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
