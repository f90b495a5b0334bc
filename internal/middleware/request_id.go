package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestID = "requestID"
	requestIDHeader  = "X-Request-ID"
	requestIDMaxLen  = 64
)

// RequestID reuses an incoming X-Request-ID (when short enough) or
// generates a UUID, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(ContextRequestID, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
