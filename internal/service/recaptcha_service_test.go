package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecaptchaServiceEnabled(t *testing.T) {
	if NewRecaptchaService("", 0.5).Enabled() {
		t.Error("service without secret should be disabled")
	}
	if !NewRecaptchaService("secret", 0.5).Enabled() {
		t.Error("service with secret should be enabled")
	}
	var nilService *RecaptchaService
	if nilService.Enabled() {
		t.Error("nil service should be disabled")
	}
}

func TestRecaptchaServiceVerifyToken(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		response     string
		wantErr      bool
		wantRejected bool
	}{
		{"success", "tok", `{"success":true,"score":0.9}`, false, false},
		{"low score", "tok", `{"success":true,"score":0.1}`, true, true},
		{"failed", "tok", `{"success":false,"error-codes":["invalid-input-response"]}`, true, true},
		{"missing token", "", `{"success":true,"score":0.9}`, true, true},
		{"bad json", "tok", `not json`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					t.Errorf("ParseForm: %v", err)
				}
				if r.PostForm.Get("secret") != "secret" {
					t.Errorf("secret = %q", r.PostForm.Get("secret"))
				}
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			svc := NewRecaptchaService("secret", 0.5).WithVerifyURL(server.URL)
			err := svc.VerifyToken(context.Background(), tt.token)

			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrCaptchaRejected) != tt.wantRejected {
				t.Errorf("errors.Is(err, ErrCaptchaRejected) = %v, want %v", errors.Is(err, ErrCaptchaRejected), tt.wantRejected)
			}
		})
	}
}
