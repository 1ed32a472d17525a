package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"minipm/internal/logging"
	"minipm/internal/tenant"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestID reuses the caller's X-Request-ID or assigns a fresh uuid, and
// makes it available to audit logging through the request context.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			logging.HTTPDebug("Assigned request id %s", id)
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := logging.Get(logging.CategoryHTTP).With("request_id", logging.RequestID(c.Request.Context()))
		org := "-"
		if o := tenant.Current(c); o != nil {
			org = o.Slug
		}
		msg := "%s %s %d %s org=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), org}
		switch {
		case status >= http.StatusInternalServerError:
			l.Error(msg, args...)
		case status >= http.StatusBadRequest:
			l.Warn(msg, args...)
		default:
			l.Debug(msg, args...)
		}
	}
}

func recoverJSON(c *gin.Context, err interface{}) {
	logging.Get(logging.CategoryHTTP).Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "The server encountered an unexpected condition",
	})
}
