package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/constants"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/utils"
)

// RequestLogger is a middleware that logs request information.
// Lines are only written when the logger was configured with LogRequests.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.LogHTTPRequest(
			c.GetString(constants.ContextKeyRequestID),
			method,
			path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
