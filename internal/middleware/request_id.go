package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"
	requestIDMaxLen = 64
)

// RequestID reuses an incoming X-Request-ID (when short enough to be safe in
// logs) or generates a UUID, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(RequestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
