package middleware

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantry-chef/internal/pkg/common"
)

// BodySizeLimit rejects bodies larger than maxSize up front when Content-Length says so,
// and caps the reader for chunked uploads. Handlers see *http.MaxBytesError on overflow.
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		if n := c.Request.ContentLength; n > maxSize {
			common.LogWarn("rejecting oversized body",
				zap.Int64("content_length", n),
				zap.Int64("limit", maxSize),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
			)
			AbortWithError(c, common.ErrBodyTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
