package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/common"
)

// HandleMessage sends a 200 response with just a message
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewMessageResponse(message))
}

// HandleStatusMessage sends a message body with an arbitrary status
func HandleStatusMessage(c *gin.Context, status int, message string) {
	c.JSON(status, common.NewMessageResponse(message))
}

// HandleValidationError sends a 400 response listing every failing field
func HandleValidationError(c *gin.Context, message string, errors map[string]string) {
	c.JSON(http.StatusBadRequest, common.NewValidationErrorResponse(message, errors))
}
