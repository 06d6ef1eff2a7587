package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kennel-backend/utils"
)

// BodyLimit rejects requests whose declared size exceeds maxBytes with
// 413 and caps the body reader for chunked requests that lie about it.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			utils.JSONError(c, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 16MB")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
