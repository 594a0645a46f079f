package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/middleware"
)

// SetupContactRoutes configures the public form routes
func SetupContactRoutes(router *gin.RouterGroup, h *Handlers, m *Middleware) {
	// Both forms share one per-client bucket
	forms := router.Group("",
		m.FormRateLimit.Middleware(),
		middleware.PreserveRequestBody(m.MaxBodySize),
	)
	{
		forms.POST("/contact", h.Contact.Submit)
		forms.POST("/early-access", h.EarlyAccess.Signup)
	}
}
