package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/common"
)

// DefaultMaxBodySize is the body limit for the public form endpoints
const DefaultMaxBodySize int64 = 64 * 1024

// MessageBodyTooLarge is returned when a body exceeds the limit
const MessageBodyTooLarge = "Request body too large"

// PreserveRequestBody reads the request body once, rejects bodies above
// maxBodySize with 413 and restores it so handlers can bind it.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBodySize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewMessageResponse(MessageBodyTooLarge))
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewMessageResponse(MessageBodyTooLarge))
				return
			}
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		// Restore the body for subsequent handlers
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		c.Next()
	}
}
