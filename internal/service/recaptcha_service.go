package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaService handles reCAPTCHA verification. It is optional: without a
// secret key it reports itself disabled and the contact flow skips it.
type RecaptchaService struct {
	secretKey string
	minScore  float64
	verifyURL string
	client    *http.Client
}

// NewRecaptchaService creates a new reCAPTCHA service
func NewRecaptchaService(secretKey string, minScore float64) *RecaptchaService {
	return &RecaptchaService{
		secretKey: secretKey,
		minScore:  minScore,
		verifyURL: recaptchaVerifyURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithVerifyURL points the service at a different verification endpoint
func (s *RecaptchaService) WithVerifyURL(u string) *RecaptchaService {
	s.verifyURL = u
	return s
}

// recaptchaResponse represents the response from Google's reCAPTCHA API
type recaptchaResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
}

// Enabled reports whether a secret key is configured
func (s *RecaptchaService) Enabled() bool {
	return s != nil && s.secretKey != ""
}

// VerifyToken verifies a reCAPTCHA token. A rejected token wraps ErrCaptchaRejected.
func (s *RecaptchaService) VerifyToken(ctx context.Context, token string) error {
	if !s.Enabled() {
		return fmt.Errorf("reCAPTCHA secret key not configured")
	}

	if token == "" {
		return fmt.Errorf("%w: token is required", ErrCaptchaRejected)
	}

	data := url.Values{}
	data.Set("secret", s.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create reCAPTCHA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify reCAPTCHA: %w", err)
	}
	defer resp.Body.Close()

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to parse reCAPTCHA response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %v", ErrCaptchaRejected, result.ErrorCodes)
	}

	// Score is only meaningful for v3 tokens
	if result.Score < s.minScore {
		return fmt.Errorf("%w: score too low: %.2f < %.2f", ErrCaptchaRejected, result.Score, s.minScore)
	}

	return nil
}
