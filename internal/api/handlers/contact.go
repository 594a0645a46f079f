package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/sanitization"
	"github.com/sirchsolutions/sirchweb/internal/api/validation"
	"github.com/sirchsolutions/sirchweb/internal/logging"
	"github.com/sirchsolutions/sirchweb/internal/service"
	"github.com/sirchsolutions/sirchweb/internal/utils"
)

// ContactDeliverer is the part of ContactService the handlers depend on
type ContactDeliverer interface {
	Configured() bool
	Deliver(ctx context.Context, sub contact.Submission) error
	NotifyEarlyAccess(ctx context.Context, email string) error
}

type ContactHandler struct {
	contactService   ContactDeliverer
	recaptchaService *service.RecaptchaService
	validator        *validation.Validator
	logger           *logging.Logger
}

// NewContactHandler creates a contact handler. recaptcha may be nil.
func NewContactHandler(contactService ContactDeliverer, recaptcha *service.RecaptchaService, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		contactService:   contactService,
		recaptchaService: recaptcha,
		validator:        validation.New(),
		logger:           logger,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, contact.MessageMalformed)
		return
	}

	// Honeypot hits get the normal success reply
	if validation.IsBot(sub.Honeypot) {
		h.logger.Warn("Honeypot triggered from %s, submission dropped", utils.GetRealIP(c))
		utils.HandleMessage(c, contact.MessageSent)
		return
	}

	if !h.contactService.Configured() {
		utils.HandleAPIError(c, h.logger, service.ErrNotConfigured, http.StatusServiceUnavailable, contact.MessageUnavailable)
		return
	}

	sub = sanitization.NormalizeSubmission(sub)
	if errs := h.validator.ValidateSubmission(sub); len(errs) > 0 {
		utils.HandleValidationError(c, contact.MessageInvalidData, errs)
		return
	}

	if h.recaptchaService.Enabled() && sub.RecaptchaToken != "" {
		if err := h.recaptchaService.VerifyToken(c.Request.Context(), sub.RecaptchaToken); err != nil {
			if errors.Is(err, service.ErrCaptchaRejected) {
				utils.HandleAPIError(c, h.logger, err, http.StatusBadRequest, contact.MessageCaptchaFailed)
				return
			}
			utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, contact.MessageCaptchaUnavailable)
			return
		}
	}

	if err := h.contactService.Deliver(c.Request.Context(), sub); err != nil {
		h.handleDeliveryError(c, err)
		return
	}

	utils.HandleMessage(c, contact.MessageSent)
}

func (h *ContactHandler) handleDeliveryError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotConfigured) {
		utils.HandleAPIError(c, h.logger, err, http.StatusServiceUnavailable, contact.MessageUnavailable)
		return
	}

	var dispatchErr *service.DispatchError
	if errors.As(err, &dispatchErr) {
		utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, failedLegsMessage(dispatchErr.Legs()))
		return
	}

	utils.HandleAPIError(c, h.logger, err, http.StatusInternalServerError, contact.MessageDispatchFailed)
}

// failedLegsMessage names the failed legs, e.g. "Failed to send admin notification and user confirmation"
func failedLegsMessage(legs []service.Leg) string {
	if len(legs) == 0 {
		return contact.MessageDispatchFailed
	}
	names := make([]string, 0, len(legs))
	for _, leg := range legs {
		names = append(names, string(leg))
	}
	return "Failed to send " + strings.Join(names, " and ")
}
