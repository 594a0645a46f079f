package service

import (
	"context"
	"fmt"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/config"
	"github.com/sirchsolutions/sirchweb/internal/utils"
)

// Dispatcher is the part of EmailService the contact flow depends on
type Dispatcher interface {
	Configured() bool
	Send(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error)
}

// ContactService turns validated submissions into emails
type ContactService struct {
	dispatcher       Dispatcher
	from             string
	to               string
	sendConfirmation bool
}

// NewContactService creates a new contact service
func NewContactService(dispatcher Dispatcher, cfg config.EmailConfig) *ContactService {
	return &ContactService{
		dispatcher:       dispatcher,
		from:             cfg.From,
		to:               cfg.To,
		sendConfirmation: cfg.SendConfirmation,
	}
}

// Configured reports whether emails can be sent at all
func (s *ContactService) Configured() bool {
	return s.dispatcher.Configured()
}

// Deliver sends the operator notification and, when enabled, the user
// confirmation concurrently, and waits for both. Failed legs are reported
// together in a *DispatchError. Sends are detached from ctx cancellation so a
// started submission always runs to completion.
func (s *ContactService) Deliver(ctx context.Context, sub contact.Submission) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	admin, err := NewOperatorNotification(sub, s.from, s.to)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", LegAdmin, err)
	}
	legs := []Leg{LegAdmin}
	messages := []*EmailMessage{admin}

	if s.sendConfirmation {
		confirmation, err := NewUserConfirmation(sub, s.from)
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", LegUser, err)
		}
		legs = append(legs, LegUser)
		messages = append(messages, confirmation)
	}

	ops := make([]func(context.Context) error, len(messages))
	for i, msg := range messages {
		ops[i] = func(ctx context.Context) error {
			_, err := s.dispatcher.Send(ctx, msg)
			return err
		}
	}

	var failures []LegFailure
	for i, err := range utils.RunAll(context.WithoutCancel(ctx), ops...) {
		if err != nil {
			failures = append(failures, LegFailure{Leg: legs[i], Err: err})
		}
	}
	if len(failures) > 0 {
		return &DispatchError{Failures: failures}
	}
	return nil
}

// NotifyEarlyAccess emails the operator about a new early access signup
func (s *ContactService) NotifyEarlyAccess(ctx context.Context, email string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	msg, err := NewEarlyAccessNotification(email, s.from, s.to)
	if err != nil {
		return err
	}

	if _, err := s.dispatcher.Send(context.WithoutCancel(ctx), msg); err != nil {
		return err
	}
	return nil
}
