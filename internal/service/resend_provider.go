package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

const resendProviderName = "resend"

// ResendProvider sends email through the Resend SDK
type ResendProvider struct {
	client *resend.Client
}

// NewResendProvider creates a new Resend provider. An empty baseURL keeps the
// SDK default.
func NewResendProvider(apiKey, baseURL string, timeout time.Duration) *ResendProvider {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &resendTransport{base: http.DefaultTransport},
	}

	client := resend.NewCustomClient(httpClient, apiKey)
	if baseURL != "" {
		if u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/"); err == nil {
			client.BaseURL = u
		}
	}

	return &ResendProvider{client: client}
}

func (p *ResendProvider) Name() string {
	return resendProviderName
}

// Send hands msg to Resend. Every failure is returned as a *DeliveryError.
func (p *ResendProvider) Send(ctx context.Context, msg *EmailMessage) (*DeliveryInfo, error) {
	call := &resendCall{idempotencyKey: msg.ID}
	ctx = context.WithValue(ctx, resendCallKey{}, call)

	sent, err := p.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return nil, p.fail(call.status, err)
	}

	return &DeliveryInfo{
		ID:       sent.Id,
		Provider: resendProviderName,
	}, nil
}

func (p *ResendProvider) fail(status int, err error) error {
	return &DeliveryError{
		Provider: resendProviderName,
		Status:   status,
		Err:      err,
	}
}

// resendCall carries per-send request metadata through the SDK to the
// transport and brings the response status back
type resendCall struct {
	idempotencyKey string
	status         int
}

type resendCallKey struct{}

// resendTransport adds the Idempotency-Key header, which the SDK send call
// does not expose, and records the HTTP status the SDK folds into its errors
type resendTransport struct {
	base http.RoundTripper
}

func (t *resendTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	call, _ := req.Context().Value(resendCallKey{}).(*resendCall)
	if call != nil && call.idempotencyKey != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Idempotency-Key", call.idempotencyKey)
	}

	resp, err := t.base.RoundTrip(req)
	if err == nil && call != nil {
		call.status = resp.StatusCode
	}
	return resp, err
}
