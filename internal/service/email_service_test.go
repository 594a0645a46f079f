package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirchsolutions/sirchweb/internal/config"
)

// Mock Provider
type mockProvider struct {
	calls    int
	sendFunc func(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error)
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Send(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error) {
	m.calls++
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return &DeliveryInfo{ID: "msg-1", Provider: "mock"}, nil
}

func TestNewEmailServiceWithoutAPIKeyIsNotConfigured(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{From: "a@example.com", To: "b@example.com"})
	assert.False(t, svc.Configured())

	_, err := svc.Send(context.Background(), &EmailMessage{To: "b@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewEmailServiceWithAPIKeyIsConfigured(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{APIKey: "re_test", BaseURL: "http://localhost", Timeout: 1})
	assert.True(t, svc.Configured())
}

func TestEmailServiceSendSuccess(t *testing.T) {
	provider := &mockProvider{}
	svc := NewEmailServiceWithProvider(provider)

	info, err := svc.Send(context.Background(), &EmailMessage{Subject: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", info.ID)
	assert.Equal(t, 1, provider.calls)
}

func TestEmailServiceWrapsProviderErrors(t *testing.T) {
	cause := errors.New("connection refused")
	provider := &mockProvider{
		sendFunc: func(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error) {
			return nil, cause
		},
	}
	svc := NewEmailServiceWithProvider(provider)

	_, err := svc.Send(context.Background(), &EmailMessage{})
	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "mock", deliveryErr.Provider)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestEmailServiceKeepsDeliveryErrors(t *testing.T) {
	original := &DeliveryError{Provider: "mock", Status: 422, Err: errors.New("invalid from")}
	provider := &mockProvider{
		sendFunc: func(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error) {
			return nil, original
		},
	}

	_, err := NewEmailServiceWithProvider(provider).Send(context.Background(), &EmailMessage{})
	assert.Same(t, original, err)
}

func TestEmailServiceRecoversProviderPanic(t *testing.T) {
	provider := &mockProvider{
		sendFunc: func(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error) {
			panic("nil map")
		},
	}

	info, err := NewEmailServiceWithProvider(provider).Send(context.Background(), &EmailMessage{})
	assert.Nil(t, info)
	var deliveryErr *DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Contains(t, deliveryErr.Error(), "provider panic")
}
