package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/tickerpulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs one structured line per request.
//
// Fields: request_id, method, path, query, status, latency_ms, client_ip and,
// when handlers attached any, the joined gin errors. 4xx responses are logged
// at warn and 5xx at error.
//
// Example log output:
//
//	{"level":"info","component":"http","request_id":"...","method":"GET","path":"/api/v1/compare","query":"mode=top10","status":200,"latency_ms":412,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		lg := logger.Component("http")

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = lg.Error()
		case status >= 400:
			ev = lg.Warn()
		default:
			ev = lg.Info()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		rid, _ := c.Get(RequestIDKey)
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
