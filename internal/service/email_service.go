package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sirchsolutions/sirchweb/internal/config"
)

const tracerName = "github.com/sirchsolutions/sirchweb/internal/service"

// EmailMessage is one outgoing email. It lives for a single dispatch attempt.
type EmailMessage struct {
	ID      string
	From    string
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// DeliveryInfo describes an email the provider accepted
type DeliveryInfo struct {
	ID       string
	Provider string
}

// Provider is a transactional email backend
type Provider interface {
	Name() string
	Send(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error)
}

// EmailService dispatches messages through a Provider. Without a provider it
// reports itself as not configured and refuses to send.
type EmailService struct {
	provider Provider
	tracer   trace.Tracer
}

// NewEmailService builds the dispatcher from config. A missing API key yields
// an unconfigured service rather than an error.
func NewEmailService(cfg config.EmailConfig) *EmailService {
	if cfg.APIKey == "" {
		return NewEmailServiceWithProvider(nil)
	}
	return NewEmailServiceWithProvider(NewResendProvider(cfg.APIKey, cfg.BaseURL, cfg.Timeout))
}

// NewEmailServiceWithProvider wraps an existing provider; nil means not configured
func NewEmailServiceWithProvider(provider Provider) *EmailService {
	return &EmailService{
		provider: provider,
		tracer:   otel.Tracer(tracerName),
	}
}

// Configured reports whether provider credentials are present
func (s *EmailService) Configured() bool {
	return s.provider != nil
}

// Send hands msg to the provider. It returns ErrNotConfigured when no provider
// is set, and a *DeliveryError for any provider failure, including panics.
func (s *EmailService) Send(ctx context.Context, msg *EmailMessage) (info *DeliveryInfo, err error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, span := s.tracer.Start(ctx, "email.send", trace.WithAttributes(
		attribute.String("email.provider", s.provider.Name()),
		attribute.String("email.subject", msg.Subject),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = &DeliveryError{Provider: s.provider.Name(), Err: fmt.Errorf("provider panic: %v", r)}
			span.RecordError(err)
			span.SetStatus(codes.Error, "provider panic")
		}
	}()

	info, err = s.provider.Send(ctx, msg)
	if err != nil {
		var deliveryErr *DeliveryError
		if !errors.As(err, &deliveryErr) {
			err = &DeliveryError{Provider: s.provider.Name(), Err: err}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return nil, err
	}

	if info == nil {
		info = &DeliveryInfo{Provider: s.provider.Name()}
	}
	span.SetAttributes(attribute.String("email.id", info.ID))
	return info, nil
}
