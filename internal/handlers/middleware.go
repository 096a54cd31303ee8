package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const bodyTooLargeKey = "body_too_large"

// LimitBody caps the request body at limit bytes. Requests that declare a
// larger Content-Length are flagged without reading the body; others fail
// with *http.MaxBytesError once they read past the limit.
func LimitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.Set(bodyTooLargeKey, true)
			c.Request.Body = http.NoBody
			c.Next()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
