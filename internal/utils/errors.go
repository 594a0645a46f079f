package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/constants"
	"github.com/sirchsolutions/sirchweb/internal/api/dto/common"
	"github.com/sirchsolutions/sirchweb/internal/logging"
)

// HandleAPIError logs err server-side and replies with message only.
// The cause never reaches the client.
func HandleAPIError(c *gin.Context, logger *logging.Logger, err error, status int, message string) {
	logger.LogHTTPError(
		c.GetString(constants.ContextKeyRequestID),
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	c.JSON(status, common.NewMessageResponse(message))
}
