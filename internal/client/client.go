package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/contact"
	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/earlyaccess"
	"github.com/sirchsolutions/sirchweb/internal/version"
)

const (
	contactPath     = "/api/contact"
	earlyAccessPath = "/api/early-access"
	healthPath      = "/health"

	// DefaultTimeout bounds every request
	DefaultTimeout = 15 * time.Second

	maxResponseSize = 64 * 1024
)

// SuccessInfo is what the server said about an accepted request
type SuccessInfo struct {
	Status  int
	Message string
}

// ServerInfo is the body of GET /health
type ServerInfo struct {
	Message         string `json:"message"`
	EmailConfigured bool   `json:"email_configured"`
	version.BuildInfo
}

type responseBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Client talks to the sirchweb API. Each call issues exactly one request and
// never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL. A zero timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts a contact submission. Any failure is a *SubmitError.
func (c *Client) Submit(ctx context.Context, sub contact.Submission) (*SuccessInfo, error) {
	return c.post(ctx, contactPath, sub)
}

// SignupEarlyAccess posts an early access signup. Any failure is a *SubmitError.
func (c *Client) SignupEarlyAccess(ctx context.Context, email string) (*SuccessInfo, error) {
	return c.post(ctx, earlyAccessPath, earlyaccess.SignupRequest{Email: email})
}

// Health fetches the server's health and build information
func (c *Client) Health(ctx context.Context) (*ServerInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(resp.StatusCode, "", nil)
	}

	var info ServerInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}
	return &info, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (*SuccessInfo, error) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sirchctl/"+version.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, newNetworkError(err)
	}

	// The body is informational; a status alone decides the outcome
	var body responseBody
	_ = sonic.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, body.Message, body.Errors)
	}

	return &SuccessInfo{
		Status:  resp.StatusCode,
		Message: body.Message,
	}, nil
}
