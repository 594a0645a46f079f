package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/earlyaccess"
	"github.com/sirchsolutions/sirchweb/internal/api/sanitization"
	"github.com/sirchsolutions/sirchweb/internal/api/validation"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/service"
	"github.com/sirchsolutions/sirchweb/internal/utils"
)

type EarlyAccessHandler struct {
	contactService ContactDeliverer
	logger         *logging.Logger
}

func NewEarlyAccessHandler(contactService ContactDeliverer, logger *logging.Logger) *EarlyAccessHandler {
	return &EarlyAccessHandler{
		contactService: contactService,
		logger:         logger,
	}
}

func (h *EarlyAccessHandler) Signup(c *gin.Context) {
	var req earlyaccess.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, earlyaccess.MessageServerError)
		return
	}

	email := sanitization.SanitizeEmail(req.Email)
	if email == "" {
		utils.HandleStatusMessage(c, http.StatusBadRequest, earlyaccess.MessageEmailRequired)
		return
	}
	if !validation.IsEmail(email) {
		utils.HandleStatusMessage(c, http.StatusBadRequest, earlyaccess.MessageEmailInvalid)
		return
	}

	if !h.contactService.Configured() {
		utils.HandleAPIError(c, h.logger, service.ErrNotConfigured, http.StatusServiceUnavailable, contact.MessageUnavailable)
		return
	}

	if err := h.contactService.NotifyEarlyAccess(c.Request.Context(), email); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, earlyaccess.MessageServerError)
		return
	}

	utils.HandleMessage(c, earlyaccess.MessageSignedUp)
}
