package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/version"
)

// EmailStatus reports whether outgoing email is configured
type EmailStatus interface {
	Configured() bool
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Message         string `json:"message"`
	EmailConfigured bool   `json:"email_configured"`
	version.BuildInfo
}

type HealthHandler struct {
	email EmailStatus
}

func NewHealthHandler(email EmailStatus) *HealthHandler {
	return &HealthHandler{email: email}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Message:         "Health check OK",
		EmailConfigured: h.email.Configured(),
		BuildInfo:       version.GetBuildInfo(),
	})
}
