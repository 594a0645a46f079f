package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/constants"
	"github.com/sirchsolutions/sirchweb/internal/api/dto/common"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/utils"
)

// MessageInternalError is returned when a handler panics
const MessageInternalError = "Internal server error"

func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					r,
					debug.Stack(),
				)

				_ = c.Error(fmt.Errorf("panic: %v", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewMessageResponse(MessageInternalError))
			}
		}()

		c.Next()
	}
}
