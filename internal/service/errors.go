package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for service layer
var (
	ErrNotConfigured   = errors.New("email service not configured")
	ErrCaptchaRejected = errors.New("recaptcha verification failed")
)

// DeliveryError is returned when the email provider fails or rejects a message.
// Status is the provider's HTTP status when one was received.
type DeliveryError struct {
	Provider string
	Status   int
	Err      error
}

func (e *DeliveryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s delivery failed (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s delivery failed: %v", e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Leg identifies one email of a contact submission
type Leg string

const (
	LegAdmin Leg = "admin notification"
	LegUser  Leg = "user confirmation"
)

// LegFailure pairs a failed leg with its cause
type LegFailure struct {
	Leg Leg
	Err error
}

// DispatchError reports every leg that failed during one submission
type DispatchError struct {
	Failures []LegFailure
}

func (e *DispatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Leg, f.Err))
	}
	return "dispatch failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes every leg's cause to errors.Is and errors.As
func (e *DispatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Legs returns the failed legs in dispatch order
func (e *DispatchError) Legs() []Leg {
	legs := make([]Leg, 0, len(e.Failures))
	for _, f := range e.Failures {
		legs = append(legs, f.Leg)
	}
	return legs
}
