package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/careerlens/careerlens/internal/utils"
)

const headerRequestID = "X-Request-Id"

// RequestLogger tags each request with an ID and logs one line when it
// completes. Errors attached with c.Error add their code and op.
func RequestLogger(l logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)
		c.Set("request_id", reqID)

		c.Next()

		status := c.Writer.Status()
		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		})
		if username := c.GetString("username"); username != "" {
			entry = entry.WithField("username", username)
		}
		if last := c.Errors.Last(); last != nil {
			entry = entry.WithFields(errorFields(last.Err))
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

func errorFields(err error) logrus.Fields {
	f := logrus.Fields{
		"error":      err.Error(),
		"error_code": utils.CodeOf(err),
	}
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Op != "" {
		f["op"] = ae.Op
	}
	return f
}
